package models

import "time"

/************************************************
/**** MARK: REFRESH TASK KINDS ****/
/************************************************/
const REFRESH_TASK_KIND_RECOMMENDATIONS = "recommendations"
const REFRESH_TASK_KIND_INGEST = "ingest"

/************************************************
/**** MARK: REFRESH TASK STATUS ****/
/************************************************/
const REFRESH_TASK_STATUS_PENDING = "pending"
const REFRESH_TASK_STATUS_PROCESSING = "processing"
const REFRESH_TASK_STATUS_DONE = "done"
const REFRESH_TASK_STATUS_FAILED = "failed"

// RefreshTask representa um pedido de recomputação em background.
// O handler HTTP só enfileira (fire-and-forget) e responde na hora;
// o worker pega tarefas "pending" vencidas e processa.
type RefreshTask struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID      int64      `gorm:"not null;index" json:"user_id"`
	Kind        string     `gorm:"not null;default:'recommendations';index" json:"kind"`
	Status      string     `gorm:"not null;default:'pending';index" json:"status"`
	ScheduledAt *time.Time `gorm:"index" json:"scheduled_at"`
	ProcessedAt *time.Time `json:"processed_at"`
	Error       string     `gorm:"type:text" json:"error"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
