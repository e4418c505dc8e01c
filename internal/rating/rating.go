// Package rating submits a selected reaction for the current record and maps
// the result onto the notification shown to the user.
package rating

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	api "github.com/ensigniasec/reactions/internal/api"
	"github.com/ensigniasec/reactions/internal/validate"
)

// Outcome classifies a submission result.
type Outcome int

const (
	Success Outcome = iota
	Duplicate
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Duplicate:
		return "duplicate"
	default:
		return "failure"
	}
}

// Notification is the user-facing message for an Outcome.
type Notification struct {
	Outcome Outcome
	Title   string
	Message string
	Err     error
}

// Notify returns the notification text for an outcome.
func Notify(o Outcome) Notification {
	switch o {
	case Success:
		return Notification{Outcome: o, Title: "Done", Message: "Your rating has been recorded"}
	case Duplicate:
		return Notification{Outcome: o, Title: "Oops!", Message: "You have already rated this movie"}
	default:
		return Notification{Outcome: Failure, Title: "Oops!", Message: "Something went wrong, please try again later"}
	}
}

// Classify maps a submission error onto an Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, api.ErrDuplicateSubmission):
		return Duplicate
	default:
		return Failure
	}
}

const defaultSubmitTimeout = 10 * time.Second

// Submitter sends ratings through a NotesClient.
type Submitter struct {
	client  api.NotesClient
	timeout time.Duration
}

// NewSubmitter returns a Submitter. A nil client leaves submission disabled.
func NewSubmitter(client api.NotesClient) *Submitter {
	return &Submitter{client: client, timeout: defaultSubmitTimeout}
}

// WithTimeout bounds each network call.
func (s *Submitter) WithTimeout(d time.Duration) *Submitter {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// CanSubmit reports whether the submit action should be offered: a client is
// configured, a record is loaded and identifier is well formed.
func (s *Submitter) CanSubmit(identifier string, rec *api.Record) bool {
	return s != nil && s.client != nil && rec != nil && rec.ID != "" && validate.Identifier(identifier)
}

// Submit sends the rating and returns the notification to show. Submissions
// that fail the validity gate return false and reach no server.
func (s *Submitter) Submit(ctx context.Context, rec *api.Record, identifier string, index int) (Notification, bool) {
	if !s.CanSubmit(identifier, rec) {
		logrus.Debug("submission not offered: record missing or identifier malformed")
		return Notification{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.client.SubmitNote(ctx, api.NoteSubmission{MovieID: rec.ID, Email: identifier, Note: index})
	n := Notify(Classify(err))
	n.Err = err
	switch n.Outcome {
	case Success:
		logrus.WithFields(logrus.Fields{"record": rec.ID, "note": index}).Info("rating submitted")
	case Duplicate:
		logrus.WithField("record", rec.ID).Warn("rating already submitted for this identifier")
	case Failure:
		logrus.WithError(err).WithField("record", rec.ID).Error("rating submission failed")
	}
	return n, true
}

// LoadRecord fetches the record to rate. Failures are logged and reported as
// nil so the caller keeps submission disabled; there is no retry.
func (s *Submitter) LoadRecord(ctx context.Context) *api.Record {
	if s == nil || s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rec, err := s.client.FetchRecord(ctx)
	if err != nil {
		logrus.WithError(err).Error("unable to load the record to rate")
		return nil
	}
	logrus.WithFields(logrus.Fields{"record": rec.ID, "title": rec.Title}).Debug("record loaded")
	return &rec
}
