package main

import (
	"time"

	"crm_system/custom/jobs"
	"crm_system/custom/util"

	"github.com/robfig/cron/v3"
	"github.com/romana/rlog"
)

func main() {
	serverConfig := util.ServerConfig{}
	serverConfig.GetConf("./config/config.yaml")

	endpoint := serverConfig.Jobs.Graphql_endpoint
	heartbeatClient := jobs.NewGraphqlClient(endpoint,
		time.Duration(serverConfig.Jobs.Heartbeat_timeout_seconds)*time.Second)
	jobClient := jobs.NewGraphqlClient(endpoint,
		time.Duration(serverConfig.Jobs.Http_timeout_seconds)*time.Second)

	heartbeat := jobs.NewHeartbeat(heartbeatClient, jobs.NewLogSink(serverConfig.Jobs.Heartbeat_log_file))
	report := jobs.NewWeeklyReport(jobClient, jobs.NewLogSink(serverConfig.Jobs.Report_log_file))
	reminders := jobs.NewOrderReminders(jobClient, jobs.NewLogSink(serverConfig.Jobs.Reminder_log_file),
		serverConfig.Jobs.Reminder_window_days)

	// Each schedule fires in its own goroutine, a slow probe in one job
	// never delays another's timer.
	scheduler := cron.New()
	mustSchedule(scheduler, serverConfig.Jobs.Heartbeat_schedule, heartbeat.Run)
	mustSchedule(scheduler, serverConfig.Jobs.Report_schedule, report.Run)
	mustSchedule(scheduler, serverConfig.Jobs.Reminder_schedule, reminders.Run)

	rlog.Infof("CRM job scheduler started, endpoint %s", endpoint)
	scheduler.Run()
}

func mustSchedule(scheduler *cron.Cron, schedule string, job func()) {
	if _, err := scheduler.AddFunc(schedule, job); err != nil {
		panic("failed to schedule job: " + err.Error())
	}
}
