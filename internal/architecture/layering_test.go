package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesImport = "finpro/internal/modules/"

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "modules"), func(path string, imports []string) {
		module := moduleName(path)
		layer := detectLayer(path)
		if module == "" || layer == "" {
			return
		}
		for _, importPath := range imports {
			if !strings.Contains(importPath, modulesImport) {
				continue
			}
			if violatesLayerRule(module, layer, importPath) {
				t.Fatalf("forbidden import in %s (%s): %s", path, layer, importPath)
			}
		}
	})
}

func TestDomainStaysFreeOfIO(t *testing.T) {
	t.Parallel()
	forbidden := []string{"net/http", "os", "encoding/json", "gopkg.in/yaml.v3", "go.uber.org/zap"}
	walkImports(t, filepath.Join("..", "modules"), func(path string, imports []string) {
		if detectLayer(path) != "domain" {
			return
		}
		for _, importPath := range imports {
			for _, f := range forbidden {
				if importPath == f {
					t.Fatalf("domain file %s imports %s", path, importPath)
				}
			}
		}
	})
}

func TestPlatformDoesNotImportModules(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "platform"), func(path string, imports []string) {
		for _, importPath := range imports {
			if strings.Contains(importPath, modulesImport) || strings.Contains(importPath, "finpro/internal/ui") {
				t.Fatalf("platform file %s imports %s", path, importPath)
			}
		}
	})
}

// walkImports calls fn with the import paths of every non-test Go file under root.
func walkImports(t *testing.T, root string, fn func(path string, imports []string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		imports := make([]string, 0, len(node.Imports))
		for _, imp := range node.Imports {
			imports = append(imports, strings.Trim(imp.Path.Value, `"`))
		}
		fn(filepath.ToSlash(path), imports)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

// violatesLayerRule allows cross-module imports of port/in and dto only.
func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.Contains(importPath, modulesImport+module+"/")
	if !sameModule {
		if strings.Contains(importPath, "/service") || strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
		return layer != "adapter/out"
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase")
	case "domain":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") || strings.Contains(importPath, "/service")
	default:
		return false
	}
}
