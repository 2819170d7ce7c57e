package audit

import (
	"pazaryeri-kar/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID            uint               `json:"id"`
	CreatedAt     string             `json:"created_at"`
	CorrelationID string             `json:"correlation_id"`
	Platform      string             `json:"platform"`
	EntityType    string             `json:"entity_type"`
	EntityKey     string             `json:"entity_key"`
	Action        models.AuditAction `json:"action"`
	Description   string             `json:"description"`
	BeforeData    string             `json:"before_data"`
	AfterData     string             `json:"after_data"`
}

// GET /api/audit-logs?platform=trendyol&entity_type=product&limit=50
func ListAuditLogsHandler(rec Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := Query{
			Platform:   c.Query("platform"),
			EntityType: c.Query("entity_type"),
			Limit:      c.QueryInt("limit", DefaultLimit),
		}

		logs, err := rec.List(c.UserContext(), q)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar listelenemedi")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, log := range logs {
			resp = append(resp, AuditLogResponse{
				ID:            log.ID,
				CreatedAt:     log.CreatedAt.Format("2006-01-02 15:04:05"),
				CorrelationID: log.CorrelationID,
				Platform:      log.Platform,
				EntityType:    log.EntityType,
				EntityKey:     log.EntityKey,
				Action:        log.Action,
				Description:   log.Description,
				BeforeData:    log.BeforeData,
				AfterData:     log.AfterData,
			})
		}

		return c.JSON(resp)
	}
}
