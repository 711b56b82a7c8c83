package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"hoodlab-backend/internal/shared"
	"hoodlab-backend/pkg/logger"
)

// Scheduler đăng ký các cron job, enqueue task cho worker xử lý
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, redisPassword string, redisDB int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterJobs đăng ký toàn bộ scheduled jobs
func (s *Scheduler) RegisterJobs() error {
	return s.registerExpirePendingPaymentsJob()
}

// ================================================
// JOB: Expire Pending Payments (Every 5 minutes)
// ================================================
// Đơn VNPay/Momo treo ở Pending quá 30 phút (khớp vnp_ExpireDate)
// sẽ bị hủy và trả lại tồn kho. Chạy 5 phút/lần để đơn hết hạn
// không giữ stock quá lâu.
func (s *Scheduler) registerExpirePendingPaymentsJob() error {
	task := asynq.NewTask(shared.TypeExpirePendingPayments, nil)

	_, err := s.scheduler.Register(
		"*/5 * * * *",
		task,
		asynq.Queue(shared.QueuePayment),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("failed to register ExpirePendingPayments job", err)
		return err
	}

	logger.Info("registered ExpirePendingPayments: every 5 minutes", nil)
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
