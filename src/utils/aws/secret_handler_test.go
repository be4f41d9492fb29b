package aws_handler_test

import (
	"context"
	"testing"

	aws_handler "cryptoapp/src/utils/aws"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecretsManager struct {
	secretsmanageriface.SecretsManagerAPI
	secrets map[string]string
	calls   int
}

func (f *fakeSecretsManager) GetSecretValueWithContext(_ aws.Context, input *secretsmanager.GetSecretValueInput, _ ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	value, ok := f.secrets[aws.StringValue(input.SecretId)]
	if !ok {
		return &secretsmanager.GetSecretValueOutput{}, nil
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(value)}, nil
}

func TestSecretManager(t *testing.T) {
	ctx := context.Background()

	t.Run("should prefer an explicit value", func(t *testing.T) {
		svc := &fakeSecretsManager{secrets: map[string]string{"jwt": "from-aws"}}
		sm := aws_handler.NewSecretManager(svc)

		value, err := sm.ResolveSecret(ctx, "inline", "jwt")
		require.NoError(t, err)
		assert.Equal(t, "inline", value)
		assert.Equal(t, 0, svc.calls)
	})

	t.Run("should read the secret when no value is configured", func(t *testing.T) {
		svc := &fakeSecretsManager{secrets: map[string]string{"jwt": "from-aws"}}
		sm := aws_handler.NewSecretManager(svc)

		value, err := sm.ResolveSecret(ctx, "", "jwt")
		require.NoError(t, err)
		assert.Equal(t, "from-aws", value)
	})

	t.Run("should fail on a secret without a string value", func(t *testing.T) {
		sm := aws_handler.NewSecretManager(&fakeSecretsManager{})

		_, err := sm.GetSecretValue(ctx, "binary")
		assert.Error(t, err)
	})
}
