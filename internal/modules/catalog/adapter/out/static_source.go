package out

import (
	"context"

	"finpro/internal/modules/catalog/domain"
	catalogout "finpro/internal/modules/catalog/port/out"
)

const placeholderVideo = "https://www.youtube.com/embed/dQw4w9WgXcQ"

// StaticSource serves the built-in club course.
type StaticSource struct{}

func NewStaticSource() catalogout.Source {
	return &StaticSource{}
}

func (s *StaticSource) Load(_ context.Context) (domain.Catalog, error) {
	return BuiltinCatalog(), nil
}

// BuiltinCatalog returns a fresh copy of the club course on every call.
func BuiltinCatalog() domain.Catalog {
	return domain.Catalog{Modules: []domain.Module{
		{
			ID:          "1",
			Title:       "Основы финансовой грамотности",
			Description: "Базовые понятия и принципы управления личными финансами",
			Icon:        "BookOpen",
			Lessons: []domain.Lesson{
				lesson("1-1", "Введение в финансы", "Что такое финансовая грамотность и почему она важна", "12:30", true),
				lesson("1-2", "Личный бюджет", "Как правильно планировать доходы и расходы", "15:45", true),
				lesson("1-3", "Финансовые цели", "Постановка и достижение финансовых целей", "10:20", false),
			},
		},
		{
			ID:          "2",
			Title:       "Инвестиции для начинающих",
			Description: "Основы инвестирования и типы инвестиционных инструментов",
			Icon:        "TrendingUp",
			Lessons: []domain.Lesson{
				lesson("2-1", "Что такое инвестиции", "Базовые понятия инвестирования", "18:00", false),
				lesson("2-2", "Акции и облигации", "Основные типы ценных бумаг", "22:15", false),
				lesson("2-3", "Риски инвестирования", "Как оценивать и управлять рисками", "16:30", false),
			},
		},
		{
			ID:          "3",
			Title:       "Налоги и оптимизация",
			Description: "Налоговая система и легальные способы оптимизации",
			Icon:        "Calculator",
			Lessons: []domain.Lesson{
				lesson("3-1", "Основы налогообложения", "Виды налогов для физических лиц", "14:20", false),
				lesson("3-2", "Налоговые вычеты", "Как получить налоговые вычеты", "19:45", false),
			},
		},
		{
			ID:          "4",
			Title:       "Пассивный доход",
			Description: "Создание источников пассивного дохода",
			Icon:        "Coins",
			Lessons: []domain.Lesson{
				lesson("4-1", "Что такое пассивный доход", "Основные виды пассивного дохода", "11:30", false),
				lesson("4-2", "Дивиденды и рента", "Инвестиции в дивидендные акции и недвижимость", "20:00", false),
			},
		},
		{
			ID:          "5",
			Title:       "Криптовалюты",
			Description: "Введение в мир криптовалют и блокчейн",
			Icon:        "Bitcoin",
			Lessons: []domain.Lesson{
				lesson("5-1", "Основы блокчейн", "Что такое блокчейн и как он работает", "17:15", false),
				lesson("5-2", "Биткоин и альткоины", "Основные криптовалюты на рынке", "21:30", false),
				lesson("5-3", "Безопасность криптоактивов", "Как безопасно хранить криптовалюту", "13:45", false),
			},
		},
	}}
}

func lesson(id, title, description, duration string, completed bool) domain.Lesson {
	return domain.Lesson{
		ID:          id,
		Title:       title,
		Description: description,
		VideoURL:    placeholderVideo,
		Duration:    duration,
		Completed:   completed,
	}
}
