package output

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/ssimconv/pkg/ssim"
	"github.com/travigo/ssimconv/pkg/table"
	"github.com/travigo/ssimconv/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoBatchSize = 200

// FlightsCollection is the part of *mongo.Collection used for leg documents.
type FlightsCollection interface {
	BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
}

// CarriersCollection is the part of *mongo.Collection used for carrier documents.
type CarriersCollection interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

type FlightDocument struct {
	ssim.FlightLeg `bson:",inline"`

	Carrier  *CarrierColumns `bson:",omitempty"`
	Segments []*ssim.Segment

	CreationDateTime time.Time
	DataSource       string
}

// MongoWriter inserts one document per leg, with its segments embedded, and
// upserts a document per carrier once its section is complete.
type MongoWriter struct {
	flights    FlightsCollection
	carriers   CarriersCollection
	dataSource string

	inserted int
	upserted int
}

func NewMongoWriter(flights FlightsCollection, carriers CarriersCollection, dataSource string) *MongoWriter {
	return &MongoWriter{
		flights:    flights,
		carriers:   carriers,
		dataSource: dataSource,
	}
}

func (w *MongoWriter) ProcessBatch(flights []*ssim.FlightLeg, segments []*ssim.Segment, carrier *ssim.Carrier) error {
	now := time.Now()
	rows := table.Condense(carrier, flights, segments)

	for _, chunk := range util.Chunk(rows, mongoBatchSize) {
		var operations []mongo.WriteModel

		for _, row := range chunk {
			document := FlightDocument{
				FlightLeg:        *row.Flight,
				Segments:         row.Segments,
				CreationDateTime: now,
				DataSource:       w.dataSource,
			}
			if row.Carrier != nil {
				document.Carrier = &CarrierColumns{}
				if err := copyCarrier(document.Carrier, row.Carrier); err != nil {
					return err
				}
			}

			insertModel := mongo.NewInsertOneModel()
			insertModel.SetDocument(document)

			operations = append(operations, insertModel)
		}

		if len(operations) == 0 {
			continue
		}

		if _, err := w.flights.BulkWrite(context.Background(), operations, &options.BulkWriteOptions{}); err != nil {
			return fmt.Errorf("bulk writing flights: %w", err)
		}
		w.inserted += len(operations)
	}

	return nil
}

func (w *MongoWriter) OnCarrierComplete(carrier *ssim.Carrier) error {
	filter := bson.M{
		"airlinedesignator":         carrier.AirlineDesignator,
		"controlduplicateindicator": carrier.ControlDuplicateIndicator,
	}

	_, err := w.carriers.UpdateOne(context.Background(), filter, bson.M{"$set": carrier}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upserting carrier %s: %w", carrier.AirlineDesignator, err)
	}
	w.upserted++

	return nil
}

func (w *MongoWriter) Finalize() error {
	log.Info().
		Str("source", w.dataSource).
		Int("flights", w.inserted).
		Int("carriers", w.upserted).
		Msg("Written to MongoDB")

	return nil
}

func (w *MongoWriter) Inserted() int {
	return w.inserted
}
