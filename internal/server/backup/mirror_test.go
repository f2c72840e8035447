package backup

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msavelyev/notedesk/internal/server/models"
)

// fakeObjectClient keeps objects in memory.
type fakeObjectClient struct {
	objects map[string][]byte
	putErr  error
	getErr  error
}

func newFakeObjectClient() *fakeObjectClient {
	return &fakeObjectClient{objects: make(map[string][]byte)}
}

func (f *fakeObjectClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*params.Key] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectClient) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	body, ok := f.objects[*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(body)))}, nil
}

func newTestMirror() (*S3Mirror, *fakeObjectClient) {
	client := newFakeObjectClient()
	return &S3Mirror{client: client, bucket: "notedesk"}, client
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	m, _ := newTestMirror()
	ctx := context.Background()

	saved := []models.Note{
		{Text: "buy milk", Tags: []string{"home"}},
		{Text: "call bank", Tags: []string{"money", "todo"}},
	}

	require.NoError(t, m.Save(ctx, NotesKey, saved))

	var loaded []models.Note
	require.NoError(t, m.Load(ctx, NotesKey, &loaded))

	assert.Equal(t, saved, loaded)
}

func TestSave_OverwritesPreviousSnapshot(t *testing.T) {
	m, _ := newTestMirror()
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, NotesKey, []models.Note{{Text: "first"}}))
	require.NoError(t, m.Save(ctx, NotesKey, []models.Note{{Text: "first"}, {Text: "second"}}))

	var loaded []models.Note
	require.NoError(t, m.Load(ctx, NotesKey, &loaded))

	require.Len(t, loaded, 2)
	assert.Equal(t, "second", loaded[1].Text)
}

func TestLoad_MissingKeyIsEmpty(t *testing.T) {
	m, _ := newTestMirror()

	var loaded []models.Note
	require.NoError(t, m.Load(context.Background(), NotesKey, &loaded))
	assert.Empty(t, loaded)
}

func TestSave_ClientErrorPropagates(t *testing.T) {
	m, client := newTestMirror()
	client.putErr = errors.New("bucket on fire")

	err := m.Save(context.Background(), NotesKey, []models.Note{{Text: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket on fire")
}

func TestLoad_ClientErrorPropagates(t *testing.T) {
	m, client := newTestMirror()
	client.getErr = errors.New("connection refused")

	var loaded []models.Note
	err := m.Load(context.Background(), NotesKey, &loaded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSave_EmptySnapshotIsJSONArray(t *testing.T) {
	m, client := newTestMirror()

	require.NoError(t, m.Save(context.Background(), CalcHistoryKey, []models.CalcEntry{}))
	assert.Equal(t, "[]", string(client.objects[CalcHistoryKey]))
}
