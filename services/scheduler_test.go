package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motocare/models"
)

func TestRecomputeCreatesPendingItemForNewVehicle(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 0)
	store.addRule("Ganti Oli", 3000, 300)

	sched := NewScheduler(store)
	require.NoError(t, sched.Recompute(v.VehicleID))

	item := store.scheduleFor(v.VehicleID, "Ganti Oli")
	require.NotNil(t, item)
	assert.Equal(t, models.StatusPending, item.Status)
	require.NotNil(t, item.NextDueOdometer)
	assert.Equal(t, 3000, *item.NextDueOdometer)
	assert.Equal(t, 3000, item.RecommendedIntervalKm)
	assert.Zero(t, store.notifCreates)
}

func TestRecomputeUpcomingEmitsReminder(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 2750)
	store.addRule("Ganti Oli", 3000, 300)

	sched := NewScheduler(store)
	require.NoError(t, sched.Recompute(v.VehicleID))

	item := store.scheduleFor(v.VehicleID, "Ganti Oli")
	require.NotNil(t, item)
	assert.Equal(t, models.StatusUpcoming, item.Status)
	assert.Equal(t, 1, store.unreadCount(item.ScheduleID, models.NotifServiceReminder))
	assert.Zero(t, store.unreadCount(item.ScheduleID, models.NotifOverdueAlert))
}

func TestRecomputeOverdueEmitsAlert(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 3100)
	store.addRule("Ganti Oli", 3000, 300)

	sched := NewScheduler(store)
	require.NoError(t, sched.Recompute(v.VehicleID))

	item := store.scheduleFor(v.VehicleID, "Ganti Oli")
	require.NotNil(t, item)
	assert.Equal(t, models.StatusOverdue, item.Status)
	assert.Equal(t, 1, store.unreadCount(item.ScheduleID, models.NotifOverdueAlert))
}

func TestRecomputeUsesLatestHistoryAsBaseline(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 5200)
	store.addRule("Ganti Oli", 3000, 300)
	day := 24 * time.Hour
	now := time.Now()
	store.addHistory(v.VehicleID, "Ganti Oli", now.Add(-90*day), 1500)
	store.addHistory(v.VehicleID, "Ganti Oli", now.Add(-10*day), 4500)

	sched := NewScheduler(store)
	require.NoError(t, sched.Recompute(v.VehicleID))

	item := store.scheduleFor(v.VehicleID, "Ganti Oli")
	require.NotNil(t, item)
	require.NotNil(t, item.NextDueOdometer)
	assert.Equal(t, 7500, *item.NextDueOdometer)
	assert.Equal(t, models.StatusPending, item.Status)
}

func TestRecomputeBreaksHistoryDateTiesByOdometer(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 4000)
	store.addRule("Ganti Oli", 3000, 300)
	date := time.Now().Add(-5 * 24 * time.Hour)
	store.addHistory(v.VehicleID, "Ganti Oli", date, 3200)
	store.addHistory(v.VehicleID, "Ganti Oli", date, 3800)

	sched := NewScheduler(store)
	require.NoError(t, sched.Recompute(v.VehicleID))

	item := store.scheduleFor(v.VehicleID, "Ganti Oli")
	require.NotNil(t, item)
	require.NotNil(t, item.NextDueOdometer)
	assert.Equal(t, 6800, *item.NextDueOdometer)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 3100)
	store.addRule("Ganti Oli", 3000, 300)
	store.addRule("Servis CVT", 8000, 100)

	sched := NewScheduler(store)
	require.NoError(t, sched.Recompute(v.VehicleID))

	creates, saves, notifs := store.scheduleCreates, store.scheduleSaves, store.notifCreates
	require.NoError(t, sched.Recompute(v.VehicleID))
	require.NoError(t, sched.Recompute(v.VehicleID))

	assert.Equal(t, creates, store.scheduleCreates, "repeat pass must not create rows")
	assert.Equal(t, saves, store.scheduleSaves, "repeat pass must not rewrite rows")
	assert.Equal(t, notifs, store.notifCreates, "repeat pass must not duplicate alerts")
}

func TestStatusMonotonicUnderOdometerIncrease(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 0)
	store.addRule("Ganti Oli", 3000, 300)
	sched := NewScheduler(store)

	lastRank := -1
	for _, odo := range []int{0, 1000, 2650, 2700, 2999, 3000, 4500} {
		store.vehicles[v.VehicleID].CurrentOdometer = odo
		require.NoError(t, sched.Recompute(v.VehicleID))

		item := store.scheduleFor(v.VehicleID, "Ganti Oli")
		require.NotNil(t, item)
		rank := models.StatusRank(item.Status)
		assert.GreaterOrEqual(t, rank, lastRank, "status regressed at odometer %d", odo)
		lastRank = rank
	}
	assert.Equal(t, models.StatusRank(models.StatusOverdue), lastRank)
}

func TestAtMostOneUnreadAlertPerScheduleAndType(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 3100)
	store.addRule("Ganti Oli", 3000, 300)
	sched := NewScheduler(store)

	for i := 0; i < 5; i++ {
		store.vehicles[v.VehicleID].CurrentOdometer += 50
		require.NoError(t, sched.Recompute(v.VehicleID))
	}

	item := store.scheduleFor(v.VehicleID, "Ganti Oli")
	require.NotNil(t, item)
	assert.Equal(t, 1, store.unreadCount(item.ScheduleID, models.NotifOverdueAlert))
}

func TestOdometerRegressionMarksAlertsRead(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 3100)
	store.addRule("Ganti Oli", 3000, 300)
	sched := NewScheduler(store)

	require.NoError(t, sched.Recompute(v.VehicleID))
	item := store.scheduleFor(v.VehicleID, "Ganti Oli")
	require.NotNil(t, item)
	require.Equal(t, 1, store.unreadCount(item.ScheduleID, models.NotifOverdueAlert))

	// Data-entry fix: the reading drops and the concern dissolves.
	store.vehicles[v.VehicleID].CurrentOdometer = 500
	require.NoError(t, sched.Recompute(v.VehicleID))

	item = store.scheduleFor(v.VehicleID, "Ganti Oli")
	assert.Equal(t, models.StatusPending, item.Status)
	assert.Zero(t, store.unreadCount(item.ScheduleID, models.NotifOverdueAlert))
	assert.Equal(t, 1, store.notifCountBySchedule(item.ScheduleID), "read alerts survive as history")
}

func TestMalformedRuleIsSkipped(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 5000)
	store.addRule("Broken Rule", 0, 100)
	store.addRule("Ganti Oli", 3000, 300)

	sched := NewScheduler(store)
	require.NoError(t, sched.Recompute(v.VehicleID))

	assert.Nil(t, store.scheduleFor(v.VehicleID, "Broken Rule"))
	assert.NotNil(t, store.scheduleFor(v.VehicleID, "Ganti Oli"))
}

func TestRecomputeMissingVehicleIsNoop(t *testing.T) {
	store := newMemStore()
	store.addRule("Ganti Oli", 3000, 300)

	sched := NewScheduler(store)
	require.NoError(t, sched.Recompute(999))
	assert.Empty(t, store.schedules)
}

func TestRecomputeRetriesOnceOnDuplicateKey(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 100)
	store.addRule("Ganti Oli", 3000, 300)
	store.failScheduleCreate = true

	sched := NewScheduler(store)
	require.NoError(t, sched.Recompute(v.VehicleID))

	item := store.scheduleFor(v.VehicleID, "Ganti Oli")
	require.NotNil(t, item)
	assert.Equal(t, models.StatusPending, item.Status)
}

func TestTerminalItemStaysDormantUntilBaselineAdvances(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 3100)
	store.addRule("Ganti Oli", 3000, 300)
	sched := NewScheduler(store)
	require.NoError(t, sched.Recompute(v.VehicleID))

	// User waives the cycle without servicing. No history: the catalog
	// target stays 3000, which the resolution already covers.
	item := store.scheduleFor(v.VehicleID, "Ganti Oli")
	require.NotNil(t, item)
	performed := 3100
	item.Status = models.StatusSkipped
	item.LastPerformedOdometer = &performed
	item.NextDueOdometer = nil

	require.NoError(t, sched.Recompute(v.VehicleID))
	item = store.scheduleFor(v.VehicleID, "Ganti Oli")
	assert.Equal(t, models.StatusSkipped, item.Status)

	// A service entry moves the baseline, the target passes the waived
	// point and a fresh cycle starts.
	store.addHistory(v.VehicleID, "Ganti Oli", time.Now(), 3500)
	store.vehicles[v.VehicleID].CurrentOdometer = 3600
	require.NoError(t, sched.Recompute(v.VehicleID))

	item = store.scheduleFor(v.VehicleID, "Ganti Oli")
	assert.Equal(t, models.StatusPending, item.Status)
	require.NotNil(t, item.NextDueOdometer)
	assert.Equal(t, 6500, *item.NextDueOdometer)
}

func TestRecomputeHandlesMultipleRulesIndependently(t *testing.T) {
	store := newMemStore()
	v := store.addVehicle(1, 7950)
	store.addRule("Ganti Oli", 3000, 300)
	store.addRule("Servis CVT", 8000, 100)
	store.addHistory(v.VehicleID, "Ganti Oli", time.Now().Add(-20*24*time.Hour), 6000)

	sched := NewScheduler(store)
	require.NoError(t, sched.Recompute(v.VehicleID))

	oil := store.scheduleFor(v.VehicleID, "Ganti Oli")
	require.NotNil(t, oil)
	assert.Equal(t, models.StatusPending, oil.Status)
	require.NotNil(t, oil.NextDueOdometer)
	assert.Equal(t, 9000, *oil.NextDueOdometer)

	cvt := store.scheduleFor(v.VehicleID, "Servis CVT")
	require.NotNil(t, cvt)
	assert.Equal(t, models.StatusUpcoming, cvt.Status)
	require.NotNil(t, cvt.NextDueOdometer)
	assert.Equal(t, 8000, *cvt.NextDueOdometer)
}

func TestTargetStatusBoundaries(t *testing.T) {
	assert.Equal(t, models.StatusOverdue, targetStatus(3000, 3000, 300))
	assert.Equal(t, models.StatusUpcoming, targetStatus(2700, 3000, 300))
	assert.Equal(t, models.StatusUpcoming, targetStatus(2999, 3000, 300))
	assert.Equal(t, models.StatusPending, targetStatus(2699, 3000, 300))
	assert.Equal(t, models.StatusPending, targetStatus(0, 3000, 300))
}
