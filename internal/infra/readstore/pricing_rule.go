package readstore

import (
	"context"

	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Property-specific rows and global defaults (property_id IS NULL) load
// together; the calculator's priority order arbitrates between them.
const findPricingRulesSQL = `
SELECT id, property_id, rule_type, priority, adjustment_type, adjustment_value,
       min_stay_nights, start_date, end_date, is_active
FROM pricing_rules
WHERE is_active = true
  AND (property_id = $1 OR property_id IS NULL)
ORDER BY priority DESC, id
`

type PricingRuleReadStore struct {
	db db.DBTX
}

func NewPricingRuleReadStore(dbtx db.DBTX) *PricingRuleReadStore {
	return &PricingRuleReadStore{db: dbtx}
}

func (r *PricingRuleReadStore) FindForProperty(ctx context.Context, propertyID uuid.UUID) (pricing.RuleSet, error) {
	rows, err := r.db.Query(ctx, findPricingRulesSQL, propertyID)
	if err != nil {
		return pricing.RuleSet{}, infra.WrapRepoErr("failed to load pricing rules", err)
	}
	defer rows.Close()

	var set pricing.RuleSet
	for rows.Next() {
		var (
			meta          pricing.RuleMeta
			propertyIDCol pgtype.UUID
			ruleType      string
			adjustType    string
			adjustValue   float64
			minStayNights pgtype.Int4
			startDate     pgtype.Date
			endDate       pgtype.Date
		)
		if err := rows.Scan(
			&meta.ID, &propertyIDCol, &ruleType, &meta.Priority, &adjustType, &adjustValue,
			&minStayNights, &startDate, &endDate, &meta.Active,
		); err != nil {
			return pricing.RuleSet{}, infra.WrapRepoErr("failed to scan pricing rule", err)
		}

		meta.PropertyID = pgconv.UUIDPtrFromPgtype(propertyIDCol)
		meta.Window = daterange.Window{
			Start: pgconv.DatePtrFromPgtype(startDate),
			End:   pgconv.DatePtrFromPgtype(endDate),
		}
		adjustment := pricing.Adjustment{
			Mode:  pricing.AdjustmentMode(adjustType),
			Value: adjustValue,
		}

		switch ruleType {
		case "base":
			set.Base = append(set.Base, pricing.BaseRule{
				RuleMeta:    meta,
				NightlyRate: money.FromUnits(adjustValue),
			})
		case "weekend":
			set.Weekend = append(set.Weekend, pricing.WeekendRule{
				RuleMeta:   meta,
				Adjustment: adjustment,
			})
		case "seasonal":
			set.Seasonal = append(set.Seasonal, pricing.SeasonalRule{
				RuleMeta:   meta,
				Adjustment: adjustment,
			})
		case "length_of_stay":
			minStay := 0
			if v := pgconv.Int4PtrFromPgtype(minStayNights); v != nil {
				minStay = int(*v)
			}
			set.LengthOfStay = append(set.LengthOfStay, pricing.LengthOfStayRule{
				RuleMeta:      meta,
				Adjustment:    adjustment,
				MinStayNights: minStay,
			})
		default:
			// Unknown categories are ignored rather than failing pricing.
		}
	}
	if err := rows.Err(); err != nil {
		return pricing.RuleSet{}, infra.WrapRepoErr("failed to read pricing rules", err)
	}
	return set, nil
}
