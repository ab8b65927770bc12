package subscription

import (
	"log"

	"github.com/go-co-op/gocron/v2"
)

// StartScheduler runs the payment revision sweep once a day. Singleton
// mode keeps overlapping runs from stacking up if a sweep is slow.
func StartScheduler(svc Service) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(2, 0, 0))),
		gocron.NewTask(func() {
			result, err := svc.RunRevision()
			if err != nil {
				log.Printf("❌ Revisión de pagos falló: %v", err)
				return
			}
			log.Printf("✅ Revisión de pagos completada: %d vencidos, %d suspendidos",
				result.PagosVencidos, result.NegociosSuspendidos)
		}),
		gocron.WithName("revisar-pagos"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	log.Println("✅ Revisión de pagos programada (diaria 02:00)")
	return scheduler, nil
}
