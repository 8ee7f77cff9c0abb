package workers

import (
	"log"
	"time"

	"hypatia/models"
	"hypatia/recommend"

	"github.com/jinzhu/gorm"
)

// StartRefreshProcessor starts a loop that processes pending refresh
// tasks whose ScheduledAt <= now.
func StartRefreshProcessor(db *gorm.DB, engine *recommend.Service) {
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			processDueTasks(db, engine)
		}
	}()
}

func processDueTasks(db *gorm.DB, engine *recommend.Service) {
	now := time.Now()

	var tasks []models.RefreshTask
	if err := db.
		Where("status = ?", models.REFRESH_TASK_STATUS_PENDING).
		Where("scheduled_at IS NOT NULL AND scheduled_at <= ?", now).
		Order("scheduled_at asc, id asc").
		Limit(50).
		Find(&tasks).Error; err != nil {
		log.Printf("refresh worker: query error: %v", err)
		return
	}

	for _, task := range tasks {
		// lock otimista: só processa se conseguir mudar status
		res := db.Model(&models.RefreshTask{}).
			Where("id = ? AND status = ?", task.ID, models.REFRESH_TASK_STATUS_PENDING).
			Update("status", models.REFRESH_TASK_STATUS_PROCESSING)
		if res.Error != nil || res.RowsAffected == 0 {
			continue
		}

		go handleTask(db, engine, task.ID)
	}
}

func handleTask(db *gorm.DB, engine *recommend.Service, taskID int64) {
	var task models.RefreshTask
	if err := db.First(&task, taskID).Error; err != nil {
		return
	}
	if task.Status != models.REFRESH_TASK_STATUS_PROCESSING {
		return
	}

	var err error
	switch task.Kind {
	case models.REFRESH_TASK_KIND_RECOMMENDATIONS:
		engine.InvalidateUser(task.UserID)
		_, err = engine.GetRecommendations(db, task.UserID, 0, true)
	case models.REFRESH_TASK_KIND_INGEST:
		// Ingestão externa não roda aqui; marcar a tarefa mantém o
		// rastro do pedido para o pipeline que importa papers.
		log.Printf("refresh worker: ingest solicitado pelo usuário %d", task.UserID)
	default:
		log.Printf("refresh worker: kind desconhecido %q (task %d)", task.Kind, task.ID)
	}

	t := time.Now()
	updates := map[string]any{
		"status":       models.REFRESH_TASK_STATUS_DONE,
		"processed_at": &t,
	}
	if err != nil {
		log.Printf("refresh worker: task %d falhou: %v", task.ID, err)
		updates["status"] = models.REFRESH_TASK_STATUS_FAILED
		updates["error"] = err.Error()
	}
	if uerr := db.Model(&models.RefreshTask{}).Where("id = ?", task.ID).Updates(updates).Error; uerr != nil {
		log.Printf("refresh worker: update task %d error: %v", task.ID, uerr)
	}
}
