package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"attest/internal/requirements"
	"attest/pkg/domain"
)

func req(hours int, activities ...domain.ActivityRef) requirements.Requirement {
	return requirements.Requirement{
		Type:               "basic-teaching",
		RequiredHours:      hours,
		RequiredActivities: activities,
		ValidityDays:       365,
	}
}

func TestPolicySatisfiesIssuance(t *testing.T) {
	policy := NewPolicy()

	t.Run("accepts when evidence covers all required activities", func(t *testing.T) {
		evidence := []domain.ActivityRef{"workshop", "online-course"}
		assert.True(t, policy.SatisfiesIssuance(evidence, req(40, "workshop", "online-course")))
	})

	t.Run("rejects when evidence falls short", func(t *testing.T) {
		evidence := []domain.ActivityRef{"workshop"}
		assert.False(t, policy.SatisfiesIssuance(evidence, req(40, "workshop", "online-course")))
	})

	t.Run("rejects when required hours are not positive", func(t *testing.T) {
		evidence := []domain.ActivityRef{"workshop", "online-course"}
		assert.False(t, policy.SatisfiesIssuance(evidence, req(0, "workshop", "online-course")))
	})

	t.Run("surplus evidence is accepted", func(t *testing.T) {
		evidence := []domain.ActivityRef{"workshop", "online-course", "seminar"}
		assert.True(t, policy.SatisfiesIssuance(evidence, req(40, "workshop", "online-course")))
	})
}

func TestPolicySatisfiesRenewal(t *testing.T) {
	policy := NewPolicy()

	t.Run("accepts half the required activities rounded down", func(t *testing.T) {
		evidence := []domain.ActivityRef{"advanced-workshop"}
		assert.True(t, policy.SatisfiesRenewal(evidence, req(40, "workshop", "online-course", "seminar")))
	})

	t.Run("rejects below half", func(t *testing.T) {
		assert.False(t, policy.SatisfiesRenewal(nil, req(40, "workshop", "online-course")))
	})

	t.Run("single required activity renews on empty evidence", func(t *testing.T) {
		// floor(1/2) == 0, so no additional evidence is needed.
		assert.True(t, policy.SatisfiesRenewal(nil, req(40, "workshop")))
	})
}
