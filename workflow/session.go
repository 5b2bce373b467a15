/*
session.go - Edit-session state machine

PURPOSE:
  One Session manages one record's edit lifecycle:

    Idle -> Loading -> Ready -> Submitting -> {Saved | SubmitError}

  Loading failures are terminal (Failed): there is no degraded view for a
  record that cannot be loaded, so the presenter shows a notice and
  navigates back. A failed submit returns the session to an editable
  state (SubmitError) with the user's draft PRESERVED; edits are never
  discarded by a failure, only by an explicit Cancel.

GUARDS:
  - Save while a submit is in flight is ignored (ErrBusy).
  - Save without a loaded record is rejected.
  - Loads carry a generation number; a response belonging to a superseded
    load (a newer Load or a Cancel happened meanwhile) is discarded.

CONCURRENCY:
  One session serves one edit view, but the HTTP layer may drive it from
  more than one goroutine, so state checks sit behind a mutex. Sessions
  never coordinate with each other; concurrent sessions on the same record
  are last-write-wins at the store, by design.

SEE ALSO:
  - record/repository.go: The fetch/update operations driven here
*/
package workflow

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/warp/seller-core/record"
)

// State is an edit session's position in its lifecycle.
type State string

const (
	StateIdle        State = "idle"
	StateLoading     State = "loading"
	StateReady       State = "ready"
	StateSubmitting  State = "submitting"
	StateSaved       State = "saved"
	StateSubmitError State = "submit_error"
	StateFailed      State = "failed"   // load failed; terminal
	StateCanceled    State = "canceled" // draft discarded; terminal
)

// editable reports whether the user may type and save in this state.
// SubmitError keeps the session editable so a failed save can be fixed.
func (s State) editable() bool {
	return s == StateReady || s == StateSubmitError
}

var (
	// ErrBusy is returned when a load or submit is already in flight.
	ErrBusy = errors.New("operation already in flight")

	// ErrNotEditable is returned for actions invalid in the current state.
	ErrNotEditable = errors.New("session is not editable")

	// ErrSuperseded is returned to a load whose response arrived after the
	// session moved on. Its result has been discarded.
	ErrSuperseded = errors.New("session superseded; response discarded")
)

// Codec adapts one record type to the workflow: draft extraction, field
// edits, and validation of a draft into a patch.
type Codec[T any, D any] interface {
	Draft(rec T) D
	Edit(d *D, field, value string) error
	Validate(d D) (record.Patch[T], record.FieldErrors)
}

// Session is the edit-session state machine for one record.
type Session[T record.Entity[T], D any] struct {
	repo  *record.Repository[T]
	codec Codec[T, D]
	log   *zap.Logger

	mu          sync.Mutex
	state       State
	gen         uint64 // bumped by Load and Cancel; stale completions check it
	id          string
	draft       D
	fieldErrors record.FieldErrors
	notice      string
}

// View is the snapshot a presenter renders: current state, the draft, and
// any errors attached to it. The draft is a copy; mutating it has no
// effect on the session.
type View[D any] struct {
	State       State
	RecordID    string
	Draft       D
	FieldErrors record.FieldErrors
	Notice      string
}

// NewSession creates an idle session.
func NewSession[T record.Entity[T], D any](repo *record.Repository[T], codec Codec[T, D], log *zap.Logger) *Session[T, D] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session[T, D]{repo: repo, codec: codec, log: log, state: StateIdle}
}

// Load fetches the record and initializes the draft as a value copy with
// numeric fields stringified. On any fetch failure the session is Failed
// and carries a sanitized notice; it never enters Ready with a partial
// record. The returned error preserves the repository taxonomy so the
// caller can pick a redirect.
func (s *Session[T, D]) Load(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.state == StateLoading || s.state == StateSubmitting {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = StateLoading
	s.gen++
	gen := s.gen
	s.id = id
	s.mu.Unlock()

	rec, err := s.repo.FetchOne(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// A newer load or a cancel superseded us; drop this response.
		return ErrSuperseded
	}
	if err != nil {
		s.state = StateFailed
		s.notice = loadNotice(err)
		s.log.Warn("edit session load failed",
			zap.String("id", id), zap.Error(err))
		return err
	}

	s.draft = s.codec.Draft(rec)
	s.fieldErrors = nil
	s.notice = ""
	s.state = StateReady
	s.log.Debug("edit session ready", zap.String("id", id))
	return nil
}

// Edit assigns one draft field. Valid only while the session is editable.
func (s *Session[T, D]) Edit(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.editable() {
		return ErrNotEditable
	}
	return s.codec.Edit(&s.draft, field, value)
}

// Save validates the draft and persists it. A second save while one is in
// flight returns ErrBusy and does nothing. On validation or store failure
// the session returns to an editable state with errors attached and the
// draft intact; the caller decides whether to re-render or reload.
func (s *Session[T, D]) Save(ctx context.Context) (T, error) {
	var zero T

	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return zero, ErrBusy
	}
	if !s.state.editable() {
		s.mu.Unlock()
		return zero, ErrNotEditable
	}
	if s.id == "" {
		s.mu.Unlock()
		return zero, ErrNotEditable
	}
	s.state = StateSubmitting
	id := s.id
	draft := s.draft
	s.mu.Unlock()

	patch, errs := s.codec.Validate(draft)
	if errs != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.state = StateSubmitError
		s.fieldErrors = errs
		s.notice = ""
		return zero, errs
	}

	rec, err := s.repo.Update(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateSubmitError
		s.fieldErrors = nil
		s.notice = submitNotice(err)
		s.log.Warn("edit session save failed",
			zap.String("id", id), zap.Error(err))
		return zero, err
	}

	s.state = StateSaved
	s.fieldErrors = nil
	s.notice = ""
	s.log.Debug("edit session saved", zap.String("id", id))
	return rec, nil
}

// Cancel discards the draft without persistence. Not allowed while a
// submit is in flight; allowed at any other point.
func (s *Session[T, D]) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitting {
		return ErrBusy
	}
	var zero D
	s.draft = zero
	s.fieldErrors = nil
	s.notice = ""
	s.gen++ // in-flight loads land on the floor
	s.state = StateCanceled
	return nil
}

// View returns the presenter snapshot.
func (s *Session[T, D]) View() View[D] {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View[D]{
		State:    s.state,
		RecordID: s.id,
		Draft:    s.draft,
		Notice:   s.notice,
	}
	if len(s.fieldErrors) > 0 {
		v.FieldErrors = make(record.FieldErrors, len(s.fieldErrors))
		for f, msg := range s.fieldErrors {
			v.FieldErrors[f] = msg
		}
	}
	return v
}

// loadNotice maps a fetch failure to user-facing text. NotFound and
// Unauthorized get the same non-committal wording as their errors; store
// details never leak verbatim.
func loadNotice(err error) string {
	switch {
	case record.IsUnauthorized(err):
		return "Please sign in to continue."
	case record.IsNotFound(err):
		return "This record is not available."
	default:
		return "Could not load the record. Please try again."
	}
}

func submitNotice(err error) string {
	switch {
	case record.IsUnauthorized(err):
		return "Please sign in to continue."
	case record.IsNotFound(err):
		return "This record is no longer available. Refresh the list and try again."
	default:
		return "Could not save your changes. Please try again."
	}
}
