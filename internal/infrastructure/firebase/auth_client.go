package firebase

import (
	"context"
	"errors"

	"firebase.google.com/go/v4/auth"
)

var ErrNoEmail = errors.New("token carries no email address")

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

// VerifyEmail checks the ID token and returns the signed-in e-mail address.
func (f *FirebaseAuthClient) VerifyEmail(ctx context.Context, idToken string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}

	email, _ := result.Claims["email"].(string)
	if email == "" {
		return "", ErrNoEmail
	}

	return email, nil
}
