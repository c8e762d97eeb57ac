package attachments

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Category classifies why a validator rejected a file.
type Category string

const (
	CategoryVirus             Category = "virus-detected"
	CategoryUnsupportedType   Category = "unsupported-type"
	CategoryMalformedDocument Category = "malformed-document"
)

// Outcome is the result a validator reports for a single file.
type Outcome struct {
	Filename string
	Category Category
	Reason   string
	ok       bool
}

// Valid reports that the file passed validation.
func Valid(filename string) Outcome {
	return Outcome{Filename: filename, ok: true}
}

// Invalid reports that the file was rejected.
func Invalid(filename string, category Category, reason string) Outcome {
	return Outcome{Filename: filename, Category: category, Reason: reason}
}

// OK reports whether the file passed.
func (o Outcome) OK() bool { return o.ok }

// Validator inspects file content before it is persisted. An Invalid
// outcome is an expected result; a returned error means the validator
// itself failed to run (for example a scan service timeout) and aborts
// the whole operation.
type Validator interface {
	Validate(ctx context.Context, filename string, content []byte) (Outcome, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context, filename string, content []byte) (Outcome, error)

func (f ValidatorFunc) Validate(ctx context.Context, filename string, content []byte) (Outcome, error) {
	return f(ctx, filename, content)
}

// runValidators fans out one goroutine per validator and joins them
// all before deciding; siblings are never cancelled on failure. Every
// Invalid outcome is aggregated into a single InvalidContentError; a
// validator fault takes precedence and is returned as-is.
func runValidators(ctx context.Context, validators []Validator, filename string, content []byte) error {
	if len(validators) == 0 {
		return nil
	}

	// Caller cancellation is not propagated: aborting a remote scan
	// midway would leave cleanup to the collaborator, so validators
	// always run to completion and late results are simply discarded.
	vctx := context.WithoutCancel(ctx)

	outcomes := make([]Outcome, len(validators))
	var group errgroup.Group
	for i, v := range validators {
		i, v := i, v
		group.Go(func() error {
			outcome, err := v.Validate(vctx, filename, content)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	reasons := map[Category]string{}
	for _, outcome := range outcomes {
		if outcome.OK() {
			continue
		}
		if existing, ok := reasons[outcome.Category]; ok {
			reasons[outcome.Category] = existing + "; " + outcome.Reason
			continue
		}
		reasons[outcome.Category] = outcome.Reason
	}
	if len(reasons) > 0 {
		return &InvalidContentError{Filename: filename, Reasons: reasons}
	}
	return nil
}
