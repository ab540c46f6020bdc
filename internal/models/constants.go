package models

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
	StatusArrived  = "arrived"
	StatusOnline   = "online"
)

const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentMixed = "mixed"
)

// Backend global message that invalidates the stored token.
const MessageUserNotAuthorized = "USER_NOT_AUTHORIZED"

const (
	// DefaultPageSize строк на страницу во всех таблицах
	DefaultPageSize = 10

	// FilterDebounce задержка текстовых фильтров в миллисекундах
	FilterDebounceMillis = 400

	// DefaultSessionTTL время жизни сессии консоли в Redis
	DefaultSessionTTL = 24 * 60 * 60 // 24 часа в секундах

	// WorkerQueueSize размер очереди воркера
	WorkerQueueSize = 1000

	// CatalogCacheTTL время жизни локального кэша справочников
	CatalogCacheTTL = 30 * 60 // 30 минут в секундах
)

