package dto

// SelectRequest - запрос на выбор региона или района по имени
type SelectRequest struct {
	Name string `json:"name" validate:"required,notblank,max=200"`
}

// SearchRequest - текстовый поиск с выбором (кнопка и Enter).
// Пустой запрос не отсекается валидатором: это отдельная ошибка EMPTY_QUERY.
type SearchRequest struct {
	Query string `json:"query" validate:"max=200"`
	// Submit - запрос пришёл клавишей Enter, а не кнопкой
	Submit bool `json:"submit"`
}

// SuggestRequest - автодополнение по обоим слоям
type SuggestRequest struct {
	Query string `query:"q" validate:"max=200"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

// ChildrenRequest - путь в иерархии штат/район/подрайон/совет
type ChildrenRequest struct {
	Path []string `validate:"max=4"`
}
