package bulk_update_status

// maxBulkSize единственное ограничение на тело запроса
const maxBulkSize = 1000

// BulkRequest HTTP request model
type BulkRequest struct {
	IDs []int64 `json:"ids"`
}
