package constants

import "os"

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetIndexDir() string {
	return getenv("INDEX_PATH", "./out")
}

func GetMediaDir() string {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path
	}

	panic("MEDIA_PATH environment variable is not set!")
}

// GetDynamoEndpoint returns "" when summaries should not be stored.
func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMO_ENDPOINT")
}

func GetDynamoTable() string {
	return getenv("DYNAMO_TABLE", "midiroll-summaries")
}

func GetDynamoRegion() string {
	return getenv("DYNAMO_REGION", "localhost")
}

func GetServeAddr() string {
	return getenv("SERVE_ADDR", ":8080")
}

// 4 for file num, 1 for note, 8 for start, 8 for duration, 1 for velocity,
// 1 for instrument
const NoteRecordSize = 23

// DynamoDB BatchGetItem limit
const MaxBatchGet = 100

const FileNumMapName = "fileNumToPath.dat"

// upload limit for the serve command
const MaxUploadSize = 16 * 1024 * 1024
