package compliance

import (
	"bneibrit/common"

	cron "github.com/robfig/cron/v3"
)

// StartPolicyCron runs apply on the given six-field schedule until the returned cron is stopped.
func StartPolicyCron(schedule string, apply func()) (*cron.Cron, error) {
	crontab := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := crontab.AddFunc(schedule, func() {
		common.Log.Info("deposit policy: evaluating statuses")
		apply()
	}); err != nil {
		return nil, err
	}
	crontab.Start()
	common.Log.Infof("deposit policy: scheduled with '%s'", schedule)
	return crontab, nil
}
