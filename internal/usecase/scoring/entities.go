package scoring

import (
	"time"

	"sme-finance-engine/internal/domain/creditscore"
)

type ScoreDTO struct {
	ScoreID   string    `json:"score_id"`
	SMEID     string    `json:"sme_id"`
	Score     int       `json:"score"`
	Rating    string    `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(cs *creditscore.CreditScore) *ScoreDTO {
	return &ScoreDTO{
		ScoreID:   cs.ScoreID,
		SMEID:     cs.SMEID,
		Score:     cs.Score,
		Rating:    string(cs.Rating),
		CreatedAt: cs.CreatedAt,
	}
}
