package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ssimconv/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "ssim"

const (
	FlightsCollection  = "ssim_flights"
	CarriersCollection = "ssim_carriers"
)

const connectRetries = 5

func ConnectMongoDB() error {
	connectionString := defaultMongoConnectionString
	dbName := defaultMongoDatabase

	env := util.GetEnvironmentVariables()

	if env["SSIM_MONGODB_CONNECTION"] != "" {
		connectionString = env["SSIM_MONGODB_CONNECTION"]
	}

	if env["SSIM_MONGODB_DATABASE"] != "" {
		dbName = env["SSIM_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	ping := func() error {
		err := client.Ping(ctx, nil)
		if err != nil {
			log.Warn().Err(err).Msg("MongoDB not reachable yet")
		}
		return err
	}
	retry := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), connectRetries), ctx)
	if err := backoff.Retry(ping, retry); err != nil {
		return fmt.Errorf("pinging mongodb: %w", err)
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	createIndexes()

	return nil
}

func Disconnect() {
	if MongoGlobalInstance == nil {
		return
	}

	if err := MongoGlobalInstance.Client.Disconnect(context.Background()); err != nil {
		log.Error().Err(err).Msg("Disconnecting from MongoDB")
	}
	MongoGlobalInstance = nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}

func createIndexes() {
	flightsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "flightdesignator", Value: 1}, {Key: "legsequencenumber", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "airlinedesignator", Value: 1}, {Key: "controlduplicateindicator", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "departurestation", Value: 1}},
		},
	}
	if _, err := GetCollection(FlightsCollection).Indexes().CreateMany(context.Background(), flightsIndex, options.CreateIndexes()); err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	carriersIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "airlinedesignator", Value: 1}, {Key: "controlduplicateindicator", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := GetCollection(CarriersCollection).Indexes().CreateMany(context.Background(), carriersIndex, options.CreateIndexes()); err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
