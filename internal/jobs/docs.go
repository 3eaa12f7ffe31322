// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are cron based (github.com/robfig/cron/v3, with a seconds field) and
// only call command handlers.
//
// # Available Jobs
//
//  1. UrgencyRefreshJob re-evaluates the urgent flag of every open order
//     against the configured FWD window.
//  2. HeadAssignmentJob assigns production heads round robin to items that
//     wait for production, until none is left.
//
// # Usage
//
//	manager := jobs.NewJobManager(urgencyJob, headJob)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// Running out of waiting items ends a head assignment run silently. Having
// no active head is logged as a warning. Every other error is logged and the
// job keeps its schedule.
package jobs
