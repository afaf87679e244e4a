package remote

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObject struct {
	key  string
	body string
	mod  time.Time
}

// fakeS3 serves objects two per page
type fakeS3 struct {
	objects []fakeObject
	gets    int
	listErr error
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	start := 0
	if in.ContinuationToken != nil {
		start = len(*in.ContinuationToken)
	}
	var matching []fakeObject
	for _, o := range f.objects {
		if strings.HasPrefix(o.key, aws.ToString(in.Prefix)) {
			matching = append(matching, o)
		}
	}
	end := start + 2
	if end > len(matching) {
		end = len(matching)
	}

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(matching))}
	for _, o := range matching[start:end] {
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(o.key),
			Size:         aws.Int64(int64(len(o.body))),
			LastModified: aws.Time(o.mod),
		})
	}
	if end < len(matching) {
		out.NextContinuationToken = aws.String(strings.Repeat("x", end))
	}
	return out, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gets++
	for _, o := range f.objects {
		if o.key == aws.ToString(in.Key) {
			return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(o.body))}, nil
		}
	}
	return nil, errors.New("NoSuchKey")
}

func newFake() *fakeS3 {
	base := time.Date(2025, 1, 30, 6, 0, 0, 0, time.UTC)
	return &fakeS3{objects: []fakeObject{
		{key: "extracts/Shipvoid Forecast 01-29-2025_0600.xlsm", body: "old", mod: base.Add(-24 * time.Hour)},
		{key: "extracts/Shipvoid Forecast 01-30-2025_0600.xlsm", body: "newest", mod: base},
		{key: "extracts/Legacy Unbilled.csv", body: "id\n", mod: base},
		{key: "extracts/notes.txt", body: "n", mod: base.Add(time.Hour)},
		{key: "other/Shipvoid Forecast 02-01-2025_0600.xlsm", body: "wrong prefix", mod: base.Add(48 * time.Hour)},
	}}
}

func TestList_PaginatesAndFilters(t *testing.T) {
	store := NewObjectStore(newFake(), "bucket", "extracts/", afero.NewMemMapFs())

	objs, err := store.List(context.Background(), "Shipvoid*.xlsm")
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "Shipvoid Forecast 01-29-2025_0600.xlsm", objs[0].Name())
}

func TestFindNewest(t *testing.T) {
	store := NewObjectStore(newFake(), "bucket", "extracts/", afero.NewMemMapFs())

	obj, err := store.FindNewest(context.Background(), "Shipvoid*.xlsm")
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, "extracts/Shipvoid Forecast 01-30-2025_0600.xlsm", obj.Key)

	obj, err = store.FindNewest(context.Background(), "Missing*.csv")
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestSync_DownloadsOnce(t *testing.T) {
	fake := newFake()
	fs := afero.NewMemMapFs()
	store := NewObjectStore(fake, "bucket", "extracts/", fs)
	ctx := context.Background()

	local, err := store.Sync(ctx, "/downloads", "Shipvoid*.xlsm", "Shipvoid*.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "/downloads/Shipvoid Forecast 01-30-2025_0600.xlsm", local)

	body, err := afero.ReadFile(fs, local)
	require.NoError(t, err)
	assert.Equal(t, "newest", string(body))

	info, err := fs.Stat(local)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(time.Date(2025, 1, 30, 6, 0, 0, 0, time.UTC)))

	_, err = store.Sync(ctx, "/downloads", "Shipvoid*.xlsm")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.gets, "unchanged file is not downloaded again")

	exists, _ := afero.Exists(fs, local+".part")
	assert.False(t, exists)
}

func TestSync_NoMatch(t *testing.T) {
	store := NewObjectStore(newFake(), "bucket", "extracts/", afero.NewMemMapFs())
	local, err := store.Sync(context.Background(), "/downloads", "*.xls")
	require.NoError(t, err)
	assert.Empty(t, local)
}

func TestSync_ListError(t *testing.T) {
	fake := newFake()
	fake.listErr = errors.New("access denied")
	store := NewObjectStore(fake, "bucket", "extracts/", afero.NewMemMapFs())

	_, err := store.Sync(context.Background(), "/downloads", "Shipvoid*.xlsm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
