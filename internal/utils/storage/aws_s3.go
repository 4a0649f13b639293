package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

var AllowImage = []string{"image/png", "image/jpeg", "image/webp"}

var ErrContentTypeNotAllowed = errors.New("content type not allowed")

type AwsS3 struct {
	Client *s3.Client
	Bucket string
	Region string
}

func NewAwsS3() AwsS3 {
	region := os.Getenv("AWS_S3_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY"),
			os.Getenv("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Fatalf("error loading AWS config: %v", err)
	}

	return AwsS3{
		Client: s3.NewFromConfig(cfg),
		Bucket: os.Getenv("AWS_S3_BUCKET"),
		Region: region,
	}
}

// UploadBytes puts an object under folder/key and returns the object key.
func (a AwsS3) UploadBytes(key string, data []byte, contentType, folder string, allowed ...string) (string, error) {
	if len(allowed) > 0 {
		ok := false
		for _, t := range allowed {
			if t == contentType {
				ok = true
				break
			}
		}
		if !ok {
			return "", ErrContentTypeNotAllowed
		}
	}

	ext := strings.TrimPrefix(contentType, "image/")
	objectKey := fmt.Sprintf("%s/%s.%s", folder, key, ext)

	_, err := a.Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      &a.Bucket,
		Key:         &objectKey,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", err
	}

	return objectKey, nil
}

func (a AwsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.Bucket, a.Region, objectKey)
}
