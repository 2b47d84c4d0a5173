package xrefs

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/uber/xref-lsp/src/xref/entity"
	"github.com/uber/xref-lsp/src/xref/internal/errors"
	"github.com/uber/xref-lsp/src/xref/mapper"
	"go.lsp.dev/protocol"
	"golang.org/x/sync/errgroup"
)

// stream fans the reference query out to the candidates as it is iterated.
type stream struct {
	ctx        context.Context
	controller *controller
	symbol     entity.SymbolDescriptor
	candidates entity.CandidateSet
	produce    func(ctx context.Context, records chan<- entity.ReferenceRecord)

	started  atomic.Bool
	mu       sync.Mutex
	failures []entity.CandidateFailure
}

// Symbol implements Stream.
func (s *stream) Symbol() entity.SymbolDescriptor {
	return s.symbol
}

// Candidates implements Stream.
func (s *stream) Candidates() entity.CandidateSet {
	return s.candidates
}

// All implements Stream.
func (s *stream) All() iter.Seq[entity.ReferenceRecord] {
	return func(yield func(entity.ReferenceRecord) bool) {
		if !s.started.CompareAndSwap(false, true) {
			return
		}

		ctx, cancel := context.WithCancel(s.ctx)
		defer cancel()

		records := make(chan entity.ReferenceRecord)
		go func() {
			defer close(records)
			s.produce(ctx, records)
		}()

		for r := range records {
			if !yield(r) {
				cancel()
				for range records {
				}
				return
			}
		}
	}
}

// Failures implements Stream.
func (s *stream) Failures() []entity.CandidateFailure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.CandidateFailure(nil), s.failures...)
}

func (s *stream) fanOut(ctx context.Context, records chan<- entity.ReferenceRecord) {
	defer s.controller.stats.Timer("fan_out_latency").Start().Stop()

	var g errgroup.Group
	g.SetLimit(s.controller.concurrency)
	for _, repo := range s.candidates.Repositories() {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			s.queryCandidate(ctx, repo, records)
			return nil
		})
	}
	g.Wait()
}

func (s *stream) queryCandidate(ctx context.Context, repo string, records chan<- entity.ReferenceRecord) {
	root, refs, err := s.controller.query(ctx, repo, s.symbol)
	if err != nil {
		s.fail(ctx, repo, root, err)
		return
	}

	s.controller.stats.Counter("records").Inc(int64(len(refs)))
	for _, ref := range refs {
		select {
		case records <- mapper.ReferenceToRecord(root, ref):
		case <-ctx.Done():
			return
		}
	}
}

// fail records a candidate that could not be queried. The other candidates are not affected.
func (s *stream) fail(ctx context.Context, repo string, root entity.RootIdentity, err error) {
	if ctx.Err() != nil && s.ctx.Err() == nil {
		// The consumer stopped iterating.
		return
	}

	candidateErr := &errors.CandidateError{Repository: repo, Err: err}
	s.mu.Lock()
	s.failures = append(s.failures, entity.CandidateFailure{Root: root, Err: candidateErr})
	s.mu.Unlock()

	s.controller.stats.Counter("candidate_errors").Inc(1)
	s.controller.logger.Warnf("skipping references from %s: %v", repo, err)

	if err := s.controller.host.LogMessage(s.ctx, &protocol.LogMessageParams{
		Type:    protocol.MessageTypeWarning,
		Message: fmt.Sprintf("Skipped references from %s: %v", repo, err),
	}); err != nil {
		s.controller.logger.Debugf("reporting failed candidate %s to host: %v", repo, err)
	}
}
