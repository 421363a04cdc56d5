package engagement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pan-asia/worker-portal/engagement"
	"github.com/pan-asia/worker-portal/worker"
)

func testWorker() worker.Worker {
	return worker.Worker{
		PassportNumber: "F126155168",
		Name:           "NGUYEN VAN A",
		Points:         5,
		LastLoginMonth: "2024-05",
		ReadPromotions: []string{"prop-2024-04"},
		MedicalHistory: []worker.MedicalRecord{
			{ID: "med-1", Date: "2024-03-10", Type: "checkup", Description: "Annual checkup"},
		},
	}
}

// =============================================================================
// LOGIN BONUS
// =============================================================================

func TestEvaluateLogin_FirstLoginOfMonthAwardsPoint(t *testing.T) {
	// GIVEN: a worker last seen in 2024-05 with 5 points
	w := testWorker()

	// WHEN: they log in during 2024-06
	updated, awarded := engagement.EvaluateLogin(w, "2024-06")

	// THEN: one point is granted and the month marker advances
	assert.True(t, awarded)
	assert.Equal(t, 6, updated.Points)
	assert.Equal(t, "2024-06", updated.LastLoginMonth)
}

func TestEvaluateLogin_SecondLoginSameMonthIsNoOp(t *testing.T) {
	w := testWorker()

	first, awarded := engagement.EvaluateLogin(w, "2024-06")
	require.True(t, awarded)

	second, awarded := engagement.EvaluateLogin(first, "2024-06")
	assert.False(t, awarded)
	assert.Equal(t, first.Points, second.Points)
	assert.Equal(t, "2024-06", second.LastLoginMonth)
}

func TestEvaluateLogin_DoesNotMutateInput(t *testing.T) {
	w := testWorker()

	_, _ = engagement.EvaluateLogin(w, "2024-06")

	assert.Equal(t, 5, w.Points)
	assert.Equal(t, "2024-05", w.LastLoginMonth)
}

func TestEvaluateLogin_NeverSeenWorker(t *testing.T) {
	// A worker with no recorded month gets the bonus on any login.
	w := testWorker()
	w.LastLoginMonth = ""
	w.Points = 0

	updated, awarded := engagement.EvaluateLogin(w, "2024-06")
	assert.True(t, awarded)
	assert.Equal(t, 1, updated.Points)
}

// =============================================================================
// PROMOTION READS
// =============================================================================

func TestConfirmPromotionRead_AwardsOnce(t *testing.T) {
	w := testWorker()

	// WHEN: reading a new promotion
	updated := engagement.ConfirmPromotionRead(w, "prop-2024-05")

	// THEN: point granted, read recorded
	assert.Equal(t, 6, updated.Points)
	assert.True(t, updated.HasRead("prop-2024-05"))

	// WHEN: reading it again
	again := engagement.ConfirmPromotionRead(updated, "prop-2024-05")

	// THEN: nothing changes
	assert.Equal(t, 6, again.Points)
	assert.Len(t, again.ReadPromotions, 2)
}

func TestConfirmPromotionRead_AlreadyReadIsIdempotent(t *testing.T) {
	w := testWorker()

	updated := engagement.ConfirmPromotionRead(w, "prop-2024-04")

	assert.Equal(t, w.Points, updated.Points)
	assert.Len(t, updated.ReadPromotions, 1)
}

func TestConfirmPromotionRead_DoesNotMutateInput(t *testing.T) {
	w := testWorker()

	_ = engagement.ConfirmPromotionRead(w, "prop-2024-05")

	assert.Equal(t, 5, w.Points)
	assert.Len(t, w.ReadPromotions, 1)
}

// =============================================================================
// PROFILE UPDATES
// =============================================================================

func TestSetBloodType(t *testing.T) {
	w := testWorker()

	updated := engagement.SetBloodType(w, "O+")

	assert.Equal(t, "O+", updated.BloodType)
	assert.Empty(t, w.BloodType)
}

func TestAppendMedicalRecord_NewestFirst(t *testing.T) {
	// GIVEN: history [C] then records A and B added in that order
	w := testWorker()
	w.MedicalHistory = []worker.MedicalRecord{{ID: "C"}}

	w = engagement.AppendMedicalRecord(w, worker.MedicalRecord{ID: "A"})
	w = engagement.AppendMedicalRecord(w, worker.MedicalRecord{ID: "B"})

	// THEN: the list reads [B, A, C]
	require.Len(t, w.MedicalHistory, 3)
	assert.Equal(t, "B", w.MedicalHistory[0].ID)
	assert.Equal(t, "A", w.MedicalHistory[1].ID)
	assert.Equal(t, "C", w.MedicalHistory[2].ID)
}

func TestAppendMedicalRecord_DoesNotAliasInput(t *testing.T) {
	w := testWorker()

	updated := engagement.AppendMedicalRecord(w, worker.MedicalRecord{ID: "med-2"})
	updated.MedicalHistory[1].Description = "changed"

	assert.Equal(t, "Annual checkup", w.MedicalHistory[0].Description)
	assert.Len(t, w.MedicalHistory, 1)
}
