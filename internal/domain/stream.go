package domain

// Stream names (читаются сервисом заявлений)
const (
	StreamMapSelection = "stream:map:selection"
)
