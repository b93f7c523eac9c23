package persistence

import "time"

// SolutionModel is the row for one computed answer.
//
// Lowest holds the uint64 answer bit-cast to int64, since database/sql
// drivers reject unsigned values with the high bit set.
type SolutionModel struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Checksum   string    `gorm:"column:checksum;size:64;not null;uniqueIndex:idx_solutions_checksum_mode"`
	Mode       string    `gorm:"column:mode;size:16;not null;uniqueIndex:idx_solutions_checksum_mode"`
	Lowest     int64     `gorm:"column:lowest;not null"`
	SeedCount  int       `gorm:"column:seed_count;not null"`
	StageCount int       `gorm:"column:stage_count;not null"`
	DurationNS int64     `gorm:"column:duration_ns;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;index"`
}

// TableName returns the table name.
func (SolutionModel) TableName() string {
	return "solutions"
}
