package repository

// HierarchyRepository - статический индекс штат → район → подрайон → совет → деревня
type HierarchyRepository interface {
	// ChildrenOf возвращает ключи следующего уровня для пути (или деревни на полной глубине).
	// Для неизвестного или частичного пути возвращается пустой срез, никогда не ошибка.
	ChildrenOf(path ...string) []string

	// ResolveState ищет ключ штата без учёта регистра
	ResolveState(name string) (string, bool)
}
