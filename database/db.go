package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"creatorhub/config"
	documentRepo "creatorhub/database/repository/document"
	"creatorhub/utils"

	firebase "firebase.google.com/go/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the global MongoDB client instance when STORE_DRIVER=mongo.
var MongoClient *mongo.Client

// InitDB initializes the MongoDB connection.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}
	MongoClient = client
	log.Println("Connected to MongoDB successfully!")
}

// OpenStore returns the document store selected by STORE_DRIVER and a function that
// releases it. app is only needed for the firestore driver.
func OpenStore(ctx context.Context, app *firebase.App) (documentRepo.Store, func(), error) {
	switch config.AppConfig.StoreDriver {
	case "firestore":
		if app == nil {
			return nil, nil, fmt.Errorf("firestore store requires a firebase app")
		}
		client, err := utils.FirestoreClient(ctx, app)
		if err != nil {
			return nil, nil, err
		}
		return documentRepo.NewFirestoreStore(client), func() { client.Close() }, nil
	case "mongo":
		InitDB()
		db := MongoClient.Database(config.AppConfig.DatabaseName)
		return documentRepo.NewMongoStore(db), func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			MongoClient.Disconnect(ctx)
		}, nil
	case "memory":
		return documentRepo.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", config.AppConfig.StoreDriver)
}
