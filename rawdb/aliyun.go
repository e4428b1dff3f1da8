package rawdb

import (
	"bytes"
	"io"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/sealpay/sealpay/schema"
)

// refer https://help.aliyun.com/document_detail/32157.html
const (
	ossErrorNoSuchKey = "NoSuchKey"
	AliyunType        = "aliyun"
)

type AliyunDB struct {
	bucketPrefix string
	client       *oss.Client
}

func NewAliyunDB(endpoint, accKey, accessKeySecret, bktPrefix string) (*AliyunDB, error) {
	client, err := oss.New(endpoint, accKey, accessKeySecret)
	if err != nil {
		return nil, err
	}

	if err = createAliyunBucket(client, bktPrefix); err != nil {
		return nil, err
	}

	log.Info("run with aliyun oss success")

	return &AliyunDB{
		bucketPrefix: bktPrefix,
		client:       client,
	}, nil
}

func (a *AliyunDB) Type() string {
	return AliyunType
}

func (a *AliyunDB) Put(bucket, key string, value []byte) (err error) {
	bkt, err := a.client.Bucket(getS3Bucket(a.bucketPrefix, bucket))
	if err != nil {
		return err
	}
	return bkt.PutObject(key, bytes.NewReader(value))
}

func (a *AliyunDB) Get(bucket, key string) (data []byte, err error) {
	bkt, err := a.client.Bucket(getS3Bucket(a.bucketPrefix, bucket))
	if err != nil {
		return
	}

	body, err := bkt.GetObject(key)
	if err != nil {
		return nil, handleOSSErr(err)
	}

	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(body)

	data, err = io.ReadAll(body)
	return
}

func (a *AliyunDB) GetAllKey(bucket string) (keys []string, err error) {
	bkt, err := a.client.Bucket(getS3Bucket(a.bucketPrefix, bucket))
	if err != nil {
		return
	}

	keys = make([]string, 0)

	startAfter := ""
	continueToken := ""
	var lsRes oss.ListObjectsResultV2

	for {
		lsRes, err = bkt.ListObjectsV2(oss.StartAfter(startAfter), oss.ContinuationToken(continueToken))
		if err != nil {
			break
		}
		for _, object := range lsRes.Objects {
			keys = append(keys, object.Key)
		}
		if lsRes.IsTruncated {
			startAfter = lsRes.StartAfter
			continueToken = lsRes.NextContinuationToken
		} else {
			break
		}
	}

	if len(keys) == 0 {
		err = schema.ErrNotExist
	}

	return
}

func (a *AliyunDB) Delete(bucket, key string) (err error) {
	bkt, err := a.client.Bucket(getS3Bucket(a.bucketPrefix, bucket))
	if err != nil {
		return
	}

	return bkt.DeleteObject(key)
}

func (a *AliyunDB) Exist(bucket, key string) bool {
	bkt, err := a.client.Bucket(getS3Bucket(a.bucketPrefix, bucket))
	if err != nil {
		return false
	}
	exist, _ := bkt.IsObjectExist(key)
	return exist
}

func (a *AliyunDB) Close() (err error) {
	return
}

func createAliyunBucket(svc *oss.Client, prefix string) error {
	ownBuckets, err := getBucketWithPrefix(svc, prefix)
	if err != nil {
		return err
	}

	for _, bucketName := range bucketNames() {
		ossBkt := getS3Bucket(prefix, bucketName) // oss bucket name only accept lower case
		if !ownBuckets[ossBkt] {
			if err := svc.CreateBucket(ossBkt); err != nil {
				return err
			}
		}
	}
	return nil
}

func getBucketWithPrefix(svc *oss.Client, prefix string) (map[string]bool, error) {
	res := make(map[string]bool)

	lsRes, err := svc.ListBuckets(oss.Prefix(prefix))
	if err != nil {
		return nil, err
	}

	for _, bucket := range lsRes.Buckets {
		res[bucket.Name] = true
	}

	return res, nil
}

func handleOSSErr(ossErr error) (err error) {
	switch ossErr.(type) {
	case oss.ServiceError:
		if ossErr.(oss.ServiceError).Code == ossErrorNoSuchKey {
			err = schema.ErrNotExist
		}
	default:
		err = ossErr
	}

	return
}
