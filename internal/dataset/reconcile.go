package dataset

import (
	"strings"

	"deployment-report-service/pkg/errors"
	"deployment-report-service/pkg/logger"
)

// ReconcileConfig holds the column policy applied during reconciliation.
// The zero policy is never used; construct via DefaultReconcileConfig and
// treat the result as immutable.
type ReconcileConfig struct {
	// Canonical is the full ordered column set every reconciled dataset
	// must contain.
	Canonical []string

	// Numeric columns are coerced to integers (parse failure becomes 0).
	Numeric []string

	// Exempt columns are never coerced even when listed as numeric in the
	// source; schedule annotations must survive verbatim.
	Exempt []string

	// Percentage names the single column coerced to a decimal fraction.
	Percentage string

	// MultiValue columns are forced to cleaned strings; upstream
	// null-to-string artifacts ("nan", "None") are rewritten to "".
	MultiValue []string
}

// DefaultReconcileConfig returns the policy for the deployment sheet layout
func DefaultReconcileConfig() *ReconcileConfig {
	return &ReconcileConfig{
		Canonical:  CanonicalColumns(),
		Numeric:    NumericColumns(),
		Exempt:     TimeColumns(),
		Percentage: ColPercentage,
		MultiValue: MultiValueColumns(),
	}
}

// Reconciler normalizes raw datasets to the canonical column contract
type Reconciler struct {
	config *ReconcileConfig
	log    logger.Logger
}

// NewReconciler creates a reconciler with the given policy (nil selects the
// default deployment-sheet policy).
func NewReconciler(config *ReconcileConfig) *Reconciler {
	if config == nil {
		config = DefaultReconcileConfig()
	}
	return &Reconciler{
		config: config,
		log:    logger.GetGlobalLogger().WithComponent("reconciler"),
	}
}

// Reconcile returns a new dataset guaranteed to contain every canonical
// column, with numeric columns coerced, the percentage column held as a
// decimal, and multi-value columns cleaned. The input is never mutated and
// rows are never dropped. The only failure mode is input that cannot be
// interpreted as tabular data at all.
func (r *Reconciler) Reconcile(raw *Dataset) (*Dataset, error) {
	if raw == nil {
		return nil, errors.DataError(errors.CodeNotTabular, "", nil)
	}

	out := raw.Clone()

	missing := 0
	for _, col := range r.config.Canonical {
		if !out.HasColumn(col) {
			if err := out.AppendColumn(col, nil); err != nil {
				return nil, errors.Wrap(err, errors.CategoryData, errors.CodeNotTabular,
					"failed to materialize canonical column")
			}
			missing++
		}
	}
	if missing > 0 {
		r.log.WithFields(logger.Fields{
			"missing_columns": missing,
			"rows":            out.Len(),
		}).Debug("Added missing canonical columns with empty defaults")
	}

	exempt := make(map[string]bool, len(r.config.Exempt))
	for _, col := range r.config.Exempt {
		exempt[col] = true
	}

	for _, col := range r.config.Numeric {
		if exempt[col] || !out.HasColumn(col) {
			continue
		}
		for i := 0; i < out.Len(); i++ {
			v, _ := out.Value(i, col)
			if v.Kind() == KindInt {
				continue
			}
			out.SetValue(i, col, Int(v.Int()))
		}
	}

	if col := r.config.Percentage; col != "" && out.HasColumn(col) {
		for i := 0; i < out.Len(); i++ {
			v, _ := out.Value(i, col)
			if v.Kind() == KindDecimal {
				continue
			}
			out.SetValue(i, col, Decimal(v.Decimal()))
		}
	}

	for _, col := range r.config.MultiValue {
		if !out.HasColumn(col) {
			continue
		}
		for i := 0; i < out.Len(); i++ {
			v, _ := out.Value(i, col)
			out.SetValue(i, col, String(cleanPlaceholder(v.Text())))
		}
	}

	return out, nil
}

// cleanPlaceholder rewrites upstream null-to-string artifacts to the empty
// string.
func cleanPlaceholder(s string) string {
	switch strings.TrimSpace(s) {
	case "nan", "None":
		return ""
	}
	return s
}
