package api

import (
	"errors"
	"log/slog"
	"strconv"

	"cpusim/config"
	"cpusim/internal/analytics"
	"cpusim/internal/core"
	"cpusim/internal/display"
	"cpusim/internal/requests"
	"cpusim/internal/responses"
	"cpusim/internal/schedulers"
	"cpusim/internal/store"

	"github.com/gofiber/fiber/v2"
)

type SchedulerHandler interface {
	FirstComeFirstServe(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	PriorityScheduling(ctx *fiber.Ctx) error
	MultilevelFeedbackQueue(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	ListRuns(ctx *fiber.Ctx) error
	GetRun(ctx *fiber.Ctx) error
	RunSnapshot(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config *config.SchedulerConfig
	store  store.Store // nil disables run history
	logger *slog.Logger
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig, st store.Store, logger *slog.Logger) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{config: config, store: st, logger: logger.With("component", "api")}
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.AlgorithmFCFS)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.AlgorithmRoundRobin)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.AlgorithmSJF)
}

func (s *SchedulerHandlerImpl) PriorityScheduling(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.AlgorithmPriority)
}

func (s *SchedulerHandlerImpl) MultilevelFeedbackQueue(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.AlgorithmMLFQ)
}

// variant is one entry of the /all comparison.
type variant struct {
	key        string
	algorithm  string
	preemptive bool
}

var variants = []variant{
	{"fcfs", schedulers.AlgorithmFCFS, false},
	{"sjf", schedulers.AlgorithmSJF, false},
	{"srtf", schedulers.AlgorithmSJF, true},
	{"rr", schedulers.AlgorithmRoundRobin, false},
	{"priority", schedulers.AlgorithmPriority, false},
	{"priority_preemptive", schedulers.AlgorithmPriority, true},
	{"mlfq", schedulers.AlgorithmMLFQ, false},
}

// AllAlgorithms runs every discipline on the same input. Results are not
// recorded in the run history.
func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return invalidFormat(ctx)
	}
	reg, err := core.NewRegistry(request.Processes())
	if err != nil {
		return s.fail(ctx, err)
	}

	out := make(map[string]responses.ScheduleResponse, len(variants))
	for _, v := range variants {
		cfg := request.Config(v.algorithm, s.config.RoundRobinTimeQuantum, s.config.MultilevelFeedbackQueueLevelsTimeQuantum)
		cfg.Preemptive = v.preemptive
		scheduler, err := schedulers.New(cfg)
		if err != nil {
			return s.fail(ctx, err)
		}
		timeline := scheduler.Schedule(reg)
		out[v.key] = analytics.GenerateResponse(v.algorithm, scheduler.Name(), reg.Processes(), timeline)
	}
	s.logger.Info("compared algorithms", "processes", reg.Len(), "variants", len(variants))
	return ctx.JSON(out)
}

func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, algorithm string) error {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return invalidFormat(ctx)
	}

	cfg := request.Config(algorithm, s.config.RoundRobinTimeQuantum, s.config.MultilevelFeedbackQueueLevelsTimeQuantum)
	scheduler, err := schedulers.New(cfg)
	if err != nil {
		return s.fail(ctx, err)
	}
	processes := request.Processes()
	timeline, err := schedulers.Compute(scheduler, processes)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := analytics.GenerateResponse(algorithm, scheduler.Name(), processes, timeline)
	if s.store != nil {
		run := &store.Run{
			Algorithm:  algorithm,
			Name:       scheduler.Name(),
			Preemptive: cfg.Preemptive,
			Processes:  processes,
			Timeline:   timeline,
		}
		if algorithm == schedulers.AlgorithmRoundRobin {
			run.TimeQuantum = cfg.TimeQuantum
		}
		if algorithm == schedulers.AlgorithmMLFQ {
			run.LevelsTimeQuantum = cfg.LevelsTimeQuantum
		}
		if err := s.store.CreateRun(ctx.UserContext(), run); err != nil {
			return s.fail(ctx, err)
		}
		response.RunID = run.ID
	}

	s.logger.Info("schedule computed", "algorithm", algorithm, "processes", len(processes),
		"slices", len(timeline), "total_time", response.TotalTime, "run_id", response.RunID)
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) ListRuns(ctx *fiber.Ctx) error {
	if s.store == nil {
		return historyDisabled(ctx)
	}
	limit, err := strconv.Atoi(ctx.Query("limit", "20"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: "limit must be an integer"})
	}
	runs, err := s.store.ListRuns(ctx.UserContext(), limit)
	if err != nil {
		return s.fail(ctx, err)
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	return ctx.JSON(runs)
}

func (s *SchedulerHandlerImpl) GetRun(ctx *fiber.Ctx) error {
	if s.store == nil {
		return historyDisabled(ctx)
	}
	run, err := s.store.GetRun(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	response := analytics.GenerateResponse(run.Algorithm, run.Name, run.Processes, run.Timeline)
	response.RunID = run.ID
	return ctx.JSON(response)
}

// RunSnapshot projects a stored run onto ?cursor=N for display clients.
func (s *SchedulerHandlerImpl) RunSnapshot(ctx *fiber.Ctx) error {
	if s.store == nil {
		return historyDisabled(ctx)
	}
	cursor, err := strconv.Atoi(ctx.Query("cursor", "0"))
	if err != nil || cursor < 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: "cursor must be a non-negative integer"})
	}
	run, err := s.store.GetRun(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(display.Project(run.Processes, run.Timeline, cursor))
}

func (s *SchedulerHandlerImpl) fail(ctx *fiber.Ctx, err error) error {
	var validation *core.ValidationError
	switch {
	case errors.As(err, &validation):
		s.logger.Debug("rejected request", "path", ctx.Path(), "error", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: validation.Message, Details: validation.Details})
	case errors.Is(err, store.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(responses.ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", "path", ctx.Path(), "error", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(responses.ErrorResponse{Error: "can not process request"})
	}
}

func invalidFormat(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: "invalid request format"})
}

func historyDisabled(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusNotFound).JSON(responses.ErrorResponse{Error: "run history is disabled"})
}
