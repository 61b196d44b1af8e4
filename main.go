package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stakz/checkout-backend/api"
	"github.com/stakz/checkout-backend/db"
	"github.com/stakz/checkout-backend/stripe"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	// define flags
	flag.StringP("host", "h", "0.0.0.0", "listen address")
	flag.IntP("port", "p", 8080, "listen port")
	flag.String("mongo-url", "", "The URL of the MongoDB server")
	flag.String("mongo-db", "checkout-backend", "The name of the MongoDB database")
	// parse flags
	flag.Parse()
	// initialize Viper
	viper.SetEnvPrefix("STKZ")
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.AutomaticEnv()
	// read the configuration
	host := viper.GetString("host")
	port := viper.GetInt("port")
	mongoURL := viper.GetString("mongo-url")
	mongoDB := viper.GetString("mongo-db")
	// initialize the MongoDB database
	database, err := db.New(mongoURL, mongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create the MongoDB database")
	}
	defer database.Close()
	// configure the Stripe service; when the provider secret is absent the
	// server still runs and the checkout endpoints answer with a
	// configuration error
	var stripeService *stripe.Service
	if cfg, err := stripe.NewConfig(); err != nil {
		log.Warn().Err(err).Msg("stripe is not configured, checkout endpoints disabled")
	} else if stripeService, err = stripe.NewService(stripe.NewClient(cfg), database); err != nil {
		log.Fatal().Err(err).Msg("failed to create the stripe service")
	}
	// create the local API server
	api.New(&api.Config{
		Host:   host,
		Port:   port,
		Store:  database,
		Stripe: stripeService,
	}).Start()
	// wait forever, as the server is running in a goroutine
	log.Info().Str("host", host).Int("port", port).Msg("server started")
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
