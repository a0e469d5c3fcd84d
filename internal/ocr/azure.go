package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
	"go.uber.org/zap"
)

type azureOracle struct {
	client *computervision.BaseClient
	log    *zap.Logger
}

// NewAzureOracle builds an Oracle backed by the Azure Computer Vision
// printed-text endpoint.
func NewAzureOracle(endpoint, apiKey string, log *zap.Logger) Oracle {
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)

	return &azureOracle{
		client: &client,
		log:    log.Named("ocr.azure"),
	}
}

func (o *azureOracle) ExtractText(ctx context.Context, data []byte) (string, error) {
	reader := io.NopCloser(bytes.NewReader(data))

	result, err := o.client.RecognizePrintedTextInStream(
		ctx,
		true,
		reader,
		computervision.OcrLanguages(computervision.En),
	)
	if err != nil {
		return "", classify(err)
	}

	var sb strings.Builder
	if result.Regions != nil {
		for _, region := range *result.Regions {
			if region.Lines == nil {
				continue
			}
			for _, line := range *region.Lines {
				if line.Words == nil {
					continue
				}
				words := make([]string, 0, len(*line.Words))
				for _, word := range *line.Words {
					if word.Text != nil {
						words = append(words, *word.Text)
					}
				}
				sb.WriteString(strings.Join(words, " "))
				sb.WriteString("\n")
			}
		}
	}
	return sb.String(), nil
}

func classify(err error) error {
	var detailed autorest.DetailedError
	if errors.As(err, &detailed) {
		if code, ok := detailed.StatusCode.(int); ok {
			if code == 401 || code == 403 {
				return fmt.Errorf("%w: %v", ErrCredential, err)
			}
		}
	}
	return fmt.Errorf("%w: %v", ErrTransient, err)
}
