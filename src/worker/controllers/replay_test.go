package controllers_test

import (
	"testing"

	"cryptoapp/src/repositories"
	"cryptoapp/src/services"
	"cryptoapp/src/utils"
	"cryptoapp/src/worker/controllers"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController() *controllers.Controller {
	logger, _ := test.NewNullLogger()
	transactions := repositories.NewMemoryTransactionRepository()
	holdings := repositories.NewMemoryHoldingRepository()
	portfolios := repositories.NewMemoryPortfolioRepository(transactions, holdings)
	return controllers.NewController(
		services.NewHoldingService(holdings, transactions, portfolios, utils.SystemClock{}),
		logger,
	)
}

func TestScheduleReplay(t *testing.T) {
	t.Run("should register the replay task", func(t *testing.T) {
		c := newController()
		defer c.StopAll()

		require.NoError(t, c.ScheduleReplay("0 3 * * *"))
		tasks := c.GetSchedulers()
		require.Contains(t, tasks, controllers.FullReplayTask)
		assert.Equal(t, "0 3 * * *", tasks[controllers.FullReplayTask].Spec())
	})

	t.Run("should replace an existing schedule", func(t *testing.T) {
		c := newController()
		defer c.StopAll()

		require.NoError(t, c.ScheduleReplay("0 3 * * *"))
		require.NoError(t, c.ScheduleReplay("*/5 * * * *"))
		tasks := c.GetSchedulers()
		assert.Len(t, tasks, 1)
		assert.Equal(t, "*/5 * * * *", tasks[controllers.FullReplayTask].Spec())
	})

	t.Run("should disable the schedule with an empty spec", func(t *testing.T) {
		c := newController()

		require.NoError(t, c.ScheduleReplay("0 3 * * *"))
		require.NoError(t, c.ScheduleReplay(""))
		assert.Empty(t, c.GetSchedulers())
	})

	t.Run("should reject an invalid spec", func(t *testing.T) {
		c := newController()

		assert.Error(t, c.ScheduleReplay("not a schedule"))
		assert.Empty(t, c.GetSchedulers())
	})
}
