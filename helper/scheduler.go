package helper

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
)

var (
	feeScheduler *cron.Cron
	geoScheduler gocron.Scheduler
)

const syncTimeout = 30 * time.Second

func StartFeeSyncScheduler(src FeeConfigSource, dst FeeConfigWriter) {
	feeScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	sync := func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		if _, err := SyncShippingFeeConfigs(ctx, src, dst); err != nil {
			log.Warnf("Lỗi đồng bộ phí vận chuyển: %v", err)
		}
	}

	// Chạy mỗi 5 phút
	_, err := feeScheduler.AddFunc("*/5 * * * *", sync)
	if err != nil {
		log.Errorf("Lỗi khởi tạo scheduler phí vận chuyển: %v", err)
		return
	}

	feeScheduler.Start()
	go sync()
	log.Info("Scheduler phí vận chuyển đã khởi động (mỗi 5 phút)")
}

func StopFeeSyncScheduler() {
	if feeScheduler != nil {
		<-feeScheduler.Stop().Done()
	}
}

type ProvinceRefresher interface {
	RefreshProvinces(ctx context.Context) (int, error)
}

// StartGeoRefreshScheduler làm mới danh sách tỉnh lúc 03:00 giờ Việt Nam mỗi ngày
func StartGeoRefreshScheduler(geo ProvinceRefresher) error {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		return err
	}
	geoScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
			defer cancel()
			n, err := geo.RefreshProvinces(ctx)
			if err != nil {
				log.Warnf("Lỗi làm mới danh sách tỉnh thành: %v", err)
				return
			}
			log.Infof("Đã làm mới %d tỉnh thành", n)
		}),
	)
	if err != nil {
		return err
	}

	s.Start()
	log.Info("Scheduler địa giới hành chính đã khởi động (03:00 hằng ngày)")
	return nil
}

func StopGeoRefreshScheduler() {
	if geoScheduler != nil {
		if err := geoScheduler.Shutdown(); err != nil {
			log.Warnf("Lỗi dừng scheduler địa giới: %v", err)
		}
	}
}
