package main

import (
	"context"
	log_ "log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kostiamol/sensorms/api"
	"github.com/kostiamol/sensorms/cfg"
	"github.com/kostiamol/sensorms/devices"
	"github.com/kostiamol/sensorms/event/pub"
	"github.com/kostiamol/sensorms/link"
	"github.com/kostiamol/sensorms/log"
	"github.com/kostiamol/sensorms/metric"
	"github.com/kostiamol/sensorms/svc"
)

func init() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log_.Fatalf("func Load: %s", err)
	}
}

func main() {
	conf, err := cfg.NewConfig()
	if err != nil {
		log_.Fatalf("func NewConfig: %s", err)
	}

	l := log.New(conf.Service.AppID, conf.Service.LogLevel)
	m := metric.New(conf.Service.AppID)

	var publisher svc.Publisher
	if conf.Publisher.Enabled() {
		p, err := pub.New(&pub.Cfg{
			Publisher: conf.Publisher,
			AppID:     conf.Service.AppID,
			Log:       l,
		})
		if err != nil {
			l.Fatalf("func pub.New: %s", err)
		}
		publisher = p
	}

	station := svc.NewStation(&svc.StationCfg{
		Log:        l,
		Metric:     m,
		Sensor:     newSensor(conf.Sensor),
		Ticker:     svc.NewTicker(svc.Millis(), conf.Service.MeasureInterval),
		PollPeriod: conf.Service.PollPeriod,
		Join: func(ctx context.Context) error {
			return link.Join(ctx, link.NewHost(conf.Network.Iface), conf.Network.SSID,
				conf.Network.Password, conf.Network.JoinDelay, l)
		},
		Publisher: publisher,
	})

	srv := api.New(&api.Cfg{
		Log:         l,
		Metric:      m,
		Station:     station,
		PortHTTP:    conf.Service.PortHTTP,
		StaticDir:   conf.Service.StaticDir,
		LiveReading: conf.Service.LiveReadingAPI,
	}).Server()

	ctrl := svc.NewCtrl()
	ctx, cancel := ctrl.Context()
	defer cancel()

	go func() {
		if err := station.Run(ctx, srv); err != nil {
			l.Errorf("func Run: %s", err)
		}
		ctrl.Terminate()
	}()

	ctrl.Wait(conf.Service.TerminationTimeout)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), conf.Service.TerminationTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Errorf("func Shutdown: %s", err)
	}
	if err := station.Close(); err != nil {
		l.Errorf("func Close: %s", err)
	}

	l.With("event", log.EventMSShutdown).Infof("%s is down", conf.Service.AppID)
	_ = l.Flush()
}

func newSensor(c cfg.Sensor) svc.Sensor {
	if c.Driver == cfg.SensorDriverBME280 {
		return devices.NewBME280(c.I2CBus, c.I2CAddr)
	}
	return svc.Stub{}
}
