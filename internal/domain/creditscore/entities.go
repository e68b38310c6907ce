package creditscore

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("credit score not found")

type Rating string

const (
	RatingLow    Rating = "Low"
	RatingMedium Rating = "Medium"
	RatingHigh   Rating = "High"
)

const (
	ScoreMin = 0
	ScoreMax = 100
)

// RatingFor maps a score to its risk tier. Bands are inclusive on the
// lower edge and exclusive on the upper, with no gaps: [70,100] Low,
// [40,70) Medium, [0,40) High.
func RatingFor(score int) Rating {
	switch {
	case score >= 70:
		return RatingLow
	case score >= 40:
		return RatingMedium
	default:
		return RatingHigh
	}
}

// CreditScore is an immutable snapshot; a fresh assessment inserts a new
// row, so the full scoring history of an SME is preserved.
type CreditScore struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ScoreID   string    `gorm:"column:score_id;type:char(32);not null;uniqueIndex:ux_credit_scores_score_id" json:"score_id"`
	SMEID     string    `gorm:"column:sme_id;type:char(32);not null;index:idx_credit_scores_sme" json:"sme_id"`
	Score     int       `gorm:"column:score;not null" json:"score"`
	Rating    Rating    `gorm:"column:rating;type:enum('Low','Medium','High');not null" json:"rating"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CreditScore) TableName() string { return "credit_scores" }
