package worker

// recordatorio_cron.go
// Background goroutine that once a day composes next-day activity reminders
// per centro and queues the emails. A Redis SETNX lock keys each (centro,
// fecha) pair so a restart — or a second replica — never sends duplicates.

import (
	"context"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	recordatorioTick = time.Hour
	recordatorioHora = 9 // local hour at which reminders go out
	recordatorioTTL  = 48 * time.Hour
)

// RecordatorioCronConfig holds the reminder goroutine's dependencies.
type RecordatorioCronConfig struct {
	Actividades repository.ActividadRepository
	Servicio    *service.ActividadService
	RDB         *redis.Client
}

// StartRecordatorioCron launches the reminder goroutine. It ticks hourly and
// fires once per day per centro, after recordatorioHora local time.
func StartRecordatorioCron(ctx context.Context, cfg RecordatorioCronConfig) {
	go func() {
		ticker := time.NewTicker(recordatorioTick)
		defer ticker.Stop()

		log.Info().Msg("recordatorio_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("recordatorio_cron: shutting down")
				return
			case <-ticker.C:
				processRecordatorios(ctx, cfg)
			}
		}
	}()
}

func processRecordatorios(ctx context.Context, cfg RecordatorioCronConfig) {
	now := time.Now()
	if now.Hour() < recordatorioHora {
		return
	}
	manana := now.AddDate(0, 0, 1)

	centros, err := cfg.Actividades.Centros(ctx)
	if err != nil {
		log.Error().Err(err).Msg("recordatorio_cron: failed to list centros")
		return
	}

	for _, centro := range centros {
		lockKey := "recordatorios:" + centro + ":" + manana.Format("2006-01-02")
		ok, err := cfg.RDB.SetNX(ctx, lockKey, 1, recordatorioTTL).Result()
		if err != nil {
			log.Error().Err(err).Str("centro", centro).Msg("recordatorio_cron: lock failed")
			continue
		}
		if !ok {
			continue // already sent today
		}

		recordatorios, err := cfg.Servicio.Recordatorios(ctx, centro, manana)
		if err != nil {
			log.Error().Err(err).Str("centro", centro).Msg("recordatorio_cron: compose failed")
			// Release the lock so the next tick retries.
			cfg.RDB.Del(ctx, lockKey)
			continue
		}
		if len(recordatorios) > 0 {
			log.Info().Str("centro", centro).Int("count", len(recordatorios)).
				Msg("recordatorio_cron: reminders queued")
		}
	}
}
