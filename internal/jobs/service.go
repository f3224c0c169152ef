// internal/jobs/service.go

// Package jobs is the client for job listings, applications, and the
// provider-side selection/completion flow. Read paths degrade to empty
// results; mutations propagate typed errors and schedule a notification
// refresh, since the backend raises notifications asynchronously.
package jobs

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"workersglobe/internal/api"
	apierrors "workersglobe/internal/common/errors"
	"workersglobe/internal/common/logger"
	"workersglobe/internal/common/validation"
	"workersglobe/internal/models"
)

// SessionSource exposes the logged-in user for request scoping and the
// duplicate-apply pre-check.
type SessionSource interface {
	CurrentUser() *models.User
}

// Notifier schedules a delayed notification refresh after a mutation.
type Notifier interface {
	ScheduleRefresh(ctx context.Context)
}

type Service struct {
	client   *api.Client
	logger   logger.Logger
	sessions SessionSource
	notifier Notifier

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewService(client *api.Client, log logger.Logger, sessions SessionSource, notifier Notifier) *Service {
	return &Service{
		client:   client,
		logger:   log.WithFields(map[string]interface{}{"component": "jobs"}),
		sessions: sessions,
		notifier: notifier,
		inFlight: make(map[string]bool),
	}
}

// begin claims an in-flight slot for key. The second concurrent mutation
// on the same key fails fast instead of issuing a duplicate request.
func (s *Service) begin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[key] {
		return false
	}
	s.inFlight[key] = true
	return true
}

func (s *Service) end(key string) {
	s.mu.Lock()
	delete(s.inFlight, key)
	s.mu.Unlock()
}

// GetJobs lists jobs, sending only filters with non-empty values. The
// backend has returned both a bare array and a {"jobs": [...]} envelope
// across versions, so both shapes decode.
func (s *Service) GetJobs(ctx context.Context, filters map[string]string) ([]models.Job, error) {
	query := url.Values{}
	for k, v := range filters {
		if v != "" {
			query.Set(k, v)
		}
	}
	return s.fetchJobs(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathJobs,
		Operation: "jobs.list",
		Query:     query,
	})
}

// GetJobByID fetches one job. A missing job is absence, not an error.
func (s *Service) GetJobByID(ctx context.Context, jobID string) (*models.Job, error) {
	var job models.Job
	err := s.client.Do(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathJob(jobID),
		Operation: "jobs.get",
		Out:       &job,
	})
	if err != nil {
		if apierrors.IsCode(err, apierrors.ErrCodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// GetProviderJobs lists the jobs posted by the logged-in provider.
func (s *Service) GetProviderJobs(ctx context.Context) ([]models.Job, error) {
	return s.fetchJobs(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathProviderJobs,
		Operation: "jobs.provider_list",
	})
}

// GetMatchingJobs lists jobs matched to the logged-in seeker's skills.
func (s *Service) GetMatchingJobs(ctx context.Context) ([]models.Job, error) {
	return s.fetchJobs(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathMatchingJobs,
		Operation: "jobs.matching",
	})
}

// SearchJobs runs a free-text search over open jobs.
func (s *Service) SearchJobs(ctx context.Context, q string) ([]models.Job, error) {
	query := url.Values{}
	if q != "" {
		query.Set("q", q)
	}
	return s.fetchJobs(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathSearchJobs,
		Operation: "jobs.search",
		Query:     query,
	})
}

// GetJobApplications lists the applications received for one job.
func (s *Service) GetJobApplications(ctx context.Context, jobID string) ([]models.Application, error) {
	var apps []models.Application
	err := s.client.Do(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathJobApplications(jobID),
		Operation: "applications.for_job",
		Out:       &apps,
	})
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// GetSeekerApplications lists the logged-in seeker's own applications.
func (s *Service) GetSeekerApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	err := s.client.Do(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathSeekerApplications,
		Operation: "applications.mine",
		Out:       &apps,
	})
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// HasApplied reports whether the logged-in seeker already applied for the
// job. It checks the seeker's own applications first; if that read fails
// it falls back to the job's application list. Errors on both paths read
// as "not applied" so the pre-check never blocks an apply attempt that
// the server would accept.
func (s *Service) HasApplied(ctx context.Context, jobID string) bool {
	apps, err := s.GetSeekerApplications(ctx)
	if err == nil {
		for i := range apps {
			if apps[i].JobID == jobID {
				return true
			}
		}
		return false
	}

	user := s.sessions.CurrentUser()
	if user == nil {
		return false
	}
	jobApps, err := s.GetJobApplications(ctx, jobID)
	if err != nil {
		return false
	}
	for i := range jobApps {
		if jobApps[i].SeekerID == user.ID {
			return true
		}
	}
	return false
}

// ApplyForJob submits an application for the job and returns the created
// record. A nil application with a nil error means the seeker had already
// applied, whether the duplicate was caught by the local pre-check or
// reported by the server as a 400. At most one apply per job is in flight
// at a time.
func (s *Service) ApplyForJob(ctx context.Context, jobID string) (*models.Application, error) {
	key := "apply:" + jobID
	if !s.begin(key) {
		return nil, apierrors.NewRequestInFlightError("apply:" + jobID)
	}
	defer s.end(key)

	if s.HasApplied(ctx, jobID) {
		s.logger.Info("skipping duplicate application", map[string]interface{}{"jobId": jobID})
		return nil, nil
	}

	var created models.Application
	err := s.client.Do(ctx, &api.Request{
		Method:    "POST",
		Path:      api.PathApplications,
		Operation: "applications.create",
		Body:      map[string]string{"jobId": jobID},
		Out:       &created,
	})
	if err != nil {
		if apierrors.IsCode(err, apierrors.ErrCodeValidationFailed) {
			// Races between the pre-check and the create land here.
			s.logger.Info("server reported duplicate application", map[string]interface{}{"jobId": jobID})
			return nil, nil
		}
		return nil, err
	}

	s.notifier.ScheduleRefresh(ctx)
	return &created, nil
}

// CreateJob validates and posts a new job for the logged-in provider.
func (s *Service) CreateJob(ctx context.Context, job *models.NewJob) (*models.Job, error) {
	result, err := validation.ValidateNewJob(job)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}
	if !result.Valid {
		return nil, apierrors.NewValidationError(result.FirstMessage())
	}

	var created models.Job
	err = s.client.Do(ctx, &api.Request{
		Method:    "POST",
		Path:      api.PathJobs,
		Operation: "jobs.create",
		Body:      job,
		Out:       &created,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.ScheduleRefresh(ctx)
	return &created, nil
}

// SelectApplicant accepts one application, moving its job to assigned.
func (s *Service) SelectApplicant(ctx context.Context, applicationID string) error {
	key := "select:" + applicationID
	if !s.begin(key) {
		return apierrors.NewRequestInFlightError("select:" + applicationID)
	}
	defer s.end(key)

	err := s.client.Do(ctx, &api.Request{
		Method:    "PUT",
		Path:      api.PathSelectApplicant(applicationID),
		Operation: "applications.select",
	})
	if err != nil {
		return err
	}

	s.notifier.ScheduleRefresh(ctx)
	return nil
}

// CompleteJob closes out an assigned job with the provider's feedback.
func (s *Service) CompleteJob(ctx context.Context, jobID string, feedback models.Feedback) error {
	key := "complete:" + jobID
	if !s.begin(key) {
		return apierrors.NewRequestInFlightError("complete:" + jobID)
	}
	defer s.end(key)

	err := s.client.Do(ctx, &api.Request{
		Method:    "PUT",
		Path:      api.PathCompleteJob(jobID),
		Operation: "jobs.complete",
		Body:      feedback,
	})
	if err != nil {
		return err
	}

	s.notifier.ScheduleRefresh(ctx)
	return nil
}

// fetchJobs issues req and decodes either response shape into a job list.
func (s *Service) fetchJobs(ctx context.Context, req *api.Request) ([]models.Job, error) {
	var raw json.RawMessage
	req.Out = &raw
	if err := s.client.Do(ctx, req); err != nil {
		return nil, err
	}
	return decodeJobList(raw)
}

func decodeJobList(raw json.RawMessage) ([]models.Job, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var jobs []models.Job
	if err := json.Unmarshal(raw, &jobs); err == nil {
		return jobs, nil
	}

	var envelope struct {
		Jobs []models.Job `json:"jobs"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, apierrors.NewServerError(0, "unexpected job list response shape")
	}
	return envelope.Jobs, nil
}
