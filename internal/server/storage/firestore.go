package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/apiforge/apiforge/pkg/models"
)

const (
	schemasCollection       = "api_configs"
	platformUsersCollection = "platform_users"
	apiUsersCollection      = "api_users"
	otpCodesCollection      = "otp_codes"
)

// NewFirestoreClient initializes the Firestore client via the Firebase
// Admin SDK using FIREBASE_CREDENTIALS_PATH and FIRESTORE_PROJECT_ID.
func NewFirestoreClient(ctx context.Context) (*firestore.Client, error) {
	credentialsPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH not set")
	}

	var conf *firebase.Config
	if projectID := os.Getenv("FIRESTORE_PROJECT_ID"); projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, conf, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}
	return client, nil
}

// NewFirestoreStore wires all repositories against one Firestore client.
func NewFirestoreStore(client *firestore.Client) *Store {
	return &Store{
		Schemas:       &firestoreSchemaRepository{client: client},
		PlatformUsers: &firestorePlatformUserRepository{client: client},
		APIUsers:      &firestoreAPIUserRepository{client: client},
		Otps:          &firestoreOtpRepository{client: client},
	}
}

type firestoreSchemaRepository struct {
	client *firestore.Client
}

func (r *firestoreSchemaRepository) Create(ctx context.Context, cfg *models.SchemaConfig) error {
	_, err := r.client.Collection(schemasCollection).Doc(cfg.ID).Create(ctx, cfg)
	return err
}

func (r *firestoreSchemaRepository) GetByID(ctx context.Context, id string) (*models.SchemaConfig, error) {
	snap, err := r.client.Collection(schemasCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	var cfg models.SchemaConfig
	if err := snap.DataTo(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *firestoreSchemaRepository) UpdateRecords(ctx context.Context, id string, records models.RecordList) error {
	if records == nil {
		records = models.RecordList{}
	}
	_, err := r.client.Collection(schemasCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "data", Value: records},
	})
	return err
}

type firestorePlatformUserRepository struct {
	client *firestore.Client
}

func (r *firestorePlatformUserRepository) Create(ctx context.Context, account *models.PlatformAccount) error {
	_, err := r.client.Collection(platformUsersCollection).Doc(account.ID).Create(ctx, account)
	return err
}

func (r *firestorePlatformUserRepository) GetByEmail(ctx context.Context, email string) (*models.PlatformAccount, error) {
	iter := r.client.Collection(platformUsersCollection).
		Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var account models.PlatformAccount
	if err := snap.DataTo(&account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *firestorePlatformUserRepository) GetByID(ctx context.Context, id string) (*models.PlatformAccount, error) {
	snap, err := r.client.Collection(platformUsersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	var account models.PlatformAccount
	if err := snap.DataTo(&account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *firestorePlatformUserRepository) ListAll(ctx context.Context) ([]models.PlatformAccount, error) {
	iter := r.client.Collection(platformUsersCollection).Documents(ctx)
	defer iter.Stop()

	var accounts []models.PlatformAccount
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var account models.PlatformAccount
		if err := snap.DataTo(&account); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

type firestoreAPIUserRepository struct {
	client *firestore.Client
}

func (r *firestoreAPIUserRepository) Create(ctx context.Context, account *models.ApiAccount) error {
	_, err := r.client.Collection(apiUsersCollection).Doc(account.Email).Create(ctx, account)
	return err
}

func (r *firestoreAPIUserRepository) GetByEmail(ctx context.Context, email string) (*models.ApiAccount, error) {
	snap, err := r.client.Collection(apiUsersCollection).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	var account models.ApiAccount
	if err := snap.DataTo(&account); err != nil {
		return nil, err
	}
	return &account, nil
}

type firestoreOtpRepository struct {
	client *firestore.Client
}

// Keying OTP documents by email makes Set an atomic replace, which keeps
// the one-live-code-per-email invariant without a delete pass.
func (r *firestoreOtpRepository) Replace(ctx context.Context, otp *models.OtpRecord) error {
	_, err := r.client.Collection(otpCodesCollection).Doc(otp.Email).Set(ctx, otp)
	return err
}

func (r *firestoreOtpRepository) GetByEmail(ctx context.Context, email string) (*models.OtpRecord, error) {
	snap, err := r.client.Collection(otpCodesCollection).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	var otp models.OtpRecord
	if err := snap.DataTo(&otp); err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *firestoreOtpRepository) DeleteExpired(ctx context.Context) error {
	iter := r.client.Collection(otpCodesCollection).
		Where("expiresAt", "<", time.Now().UTC()).Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return err
		}
	}
}
