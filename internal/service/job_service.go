package service

import (
	"fmt"
	"log"
	"time"

	"github.com/alibiomar/meninx/internal/booking"
	"github.com/alibiomar/meninx/internal/db"
	"github.com/alibiomar/meninx/internal/repository"
)

// JobService runs the scheduled maintenance: closing finished rentals,
// dropping stale pending reservations and reclaiming idle wizard sessions.
type JobService struct {
	Repo     *repository.JobRepository
	Sessions *booking.Manager
}

func NewJobService(repo *repository.JobRepository, sessions *booking.Manager) *JobService {
	return &JobService{Repo: repo, Sessions: sessions}
}

// CompleteEndedReservations marks confirmed reservations past their end date
// as completed.
func (s *JobService) CompleteEndedReservations() error {
	ids, err := s.Repo.GetConfirmedReservationIDsPastEndDate()
	if err != nil {
		return fmt.Errorf("cron job: failed to get reservations past end date: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	log.Printf("Cron Job: marking %d reservations as '%s'. IDs: %v", len(ids), db.StatusCompleted, ids)
	if err := s.Repo.UpdateReservationStatuses(ids, db.StatusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update reservation statuses: %w", err)
	}
	return nil
}

// DeleteOldPendingReservations deletes pending, unpaid reservations created
// before the given cutoff.
func (s *JobService) DeleteOldPendingReservations(before time.Time) (int64, error) {
	return s.Repo.DeletePendingReservationsOlderThan(before)
}

// PurgeExpiredSessions reclaims booking sessions idle past their TTL.
func (s *JobService) PurgeExpiredSessions() {
	if removed := s.Sessions.PurgeExpired(); removed > 0 {
		log.Printf("Cron Job: purged %d expired booking sessions", removed)
	}
}
