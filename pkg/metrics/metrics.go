package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы создания бронирования
const (
	OutcomeCreated             = "created"
	OutcomeRejected            = "rejected"
	OutcomePersistenceConflict = "persistence_conflict"
)

// Результаты обращения к кэшу
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec

	BookingOutcomes      *prometheus.CounterVec
	StatusTransitions    *prometheus.CounterVec
	NotificationFailures *prometheus.CounterVec
	CacheRequests        *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		BookingOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_create_outcomes_total",
			Help: "Outcomes of booking creation requests",
		}, []string{"service", "outcome", "reason"}),

		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_status_transitions_total",
			Help: "Booking status changes applied by staff",
		}, []string{"service", "status", "channel"}),

		NotificationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_notification_failures_total",
			Help: "Failed booking confirmation deliveries",
		}, []string{"service"}),

		CacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Cache lookups by result",
		}, []string{"service", "cache", "result"}),
	}
}

// ServiceName возвращает имя сервиса, используемое в метках
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// ObserveHTTPRequest фиксирует выполненный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(seconds)
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, failed bool, seconds float64) {
	if m == nil {
		return
	}
	status := "ok"
	if failed {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(m.serviceName, operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(seconds)
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.DBConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

// BookingCreated увеличивает счетчик успешно созданных бронирований
func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(m.serviceName, OutcomeCreated, "").Inc()
}

// BookingRejected увеличивает счетчик отклоненных бронирований по причине
func (m *Metrics) BookingRejected(reason string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(m.serviceName, OutcomeRejected, reason).Inc()
}

// PersistenceConflict фиксирует срабатывание ограничения БД при конкурентной записи
func (m *Metrics) PersistenceConflict() {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(m.serviceName, OutcomePersistenceConflict, "overlap").Inc()
}

// StatusChanged фиксирует смену статуса (channel: single или bulk)
func (m *Metrics) StatusChanged(status, channel string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.StatusTransitions.WithLabelValues(m.serviceName, status, channel).Add(float64(count))
}

// NotificationFailed увеличивает счетчик неудачных отправок уведомлений
func (m *Metrics) NotificationFailed() {
	if m == nil {
		return
	}
	m.NotificationFailures.WithLabelValues(m.serviceName).Inc()
}

// CacheLookup фиксирует обращение к кэшу
func (m *Metrics) CacheLookup(cache, result string) {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues(m.serviceName, cache, result).Inc()
}
