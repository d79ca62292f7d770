package usecase

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"couple-schedule-manager/internal/model"
	"couple-schedule-manager/internal/task/repository"
	"couple-schedule-manager/pkg/datemath"
	"couple-schedule-manager/pkg/gcalendar"
	"couple-schedule-manager/pkg/gemini"
	pkgLog "couple-schedule-manager/pkg/log"
)

const (
	listsCacheSize = 512
	listsCacheTTL  = time.Minute
)

// LLMClient is the text-generation capability consumed by the pipeline.
type LLMClient interface {
	GenerateContent(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error)
}

// CalendarClient creates calendar events for tasks with a due date.
// May be nil when calendar sync is not configured.
type CalendarClient interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

type implUseCase struct {
	l          pkgLog.Logger
	llm        LLMClient
	calendar   CalendarClient
	repo       repository.Repository
	normalizer *datemath.Normalizer
	timezone   string
	listsCache *expirable.LRU[string, []model.List]
	now        func() time.Time
}

// New creates a new assistant UseCase instance.
func New(
	l pkgLog.Logger,
	llm LLMClient,
	calendar CalendarClient,
	repo repository.Repository,
	normalizer *datemath.Normalizer,
	timezone string,
) *implUseCase {
	return &implUseCase{
		l:          l,
		llm:        llm,
		calendar:   calendar,
		repo:       repo,
		normalizer: normalizer,
		timezone:   timezone,
		listsCache: expirable.NewLRU[string, []model.List](listsCacheSize, nil, listsCacheTTL),
		now:        time.Now,
	}
}
