package ports

import (
	"time"

	"github.com/bnema/vipasana-cli/internal/domain"
)

type Clip struct {
	ID         string
	Transcript string
	Duration   time.Duration
	File       string
}

// ScriptCatalog resolves guided clips and checkpoint tables.
type ScriptCatalog interface {
	Clip(id string) (Clip, error)
	Schedule() domain.GuidedSchedule
}
