package scan

import (
	"context"
	"fmt"

	"attachments-backend/internal/attachments"
)

// Validator adapts the scan client to the validation pipeline. A FOUND
// result is an Invalid outcome; a failing scan call is a fault and
// aborts the save.
type Validator struct {
	Client *Client
}

// Validate scans the content for malware.
func (v *Validator) Validate(ctx context.Context, filename string, content []byte) (attachments.Outcome, error) {
	results, err := v.Client.Scan(ctx, filename, content)
	if err != nil {
		return attachments.Outcome{}, err
	}
	for _, result := range results {
		if result.Result != ResultOK {
			reason := fmt.Sprintf("scanner flagged %s as %s", result.Filename, result.Result)
			return attachments.Invalid(filename, attachments.CategoryVirus, reason), nil
		}
	}
	return attachments.Valid(filename), nil
}

var _ attachments.Validator = (*Validator)(nil)
