package db

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/midiroll/constants"
	"github.com/jsphweid/midiroll/model"
	"github.com/pkg/errors"
)

type summaryItem struct {
	PK      string `dynamodbav:"PK"`
	Count   int    `dynamodbav:"Count"`
	Lowest  uint8  `dynamodbav:"Lowest"`
	Highest uint8  `dynamodbav:"Highest"`
	End     uint64 `dynamodbav:"End"`
}

// Store keeps one layout summary per indexed file, keyed by path.
type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewStore(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

// Connect builds a Store from DYNAMO_ENDPOINT, DYNAMO_REGION and DYNAMO_TABLE.
func Connect() (*Store, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetDynamoRegion()),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return NewStore(dynamodb.New(sess), constants.GetDynamoTable()), nil
}

func (s *Store) PutSummary(path string, summary model.Summary) error {
	item, err := dynamodbattribute.MarshalMap(summaryItem{
		PK:      path,
		Count:   summary.Count,
		Lowest:  uint8(summary.Lowest),
		Highest: uint8(summary.Highest),
		End:     uint64(summary.End),
	})
	if err != nil {
		return errors.Wrap(err, "could not marshal summary")
	}
	_, err = s.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return errors.Wrap(err, "error from DynamoDB")
}

// GetSummaries looks up the summaries of up to constants.MaxBatchGet paths.
// Paths without a stored summary are absent from the result.
func (s *Store) GetSummaries(paths []string) (map[string]model.Summary, error) {
	if len(paths) > constants.MaxBatchGet {
		return nil, errors.Errorf("can not fetch more than %d summaries at once", constants.MaxBatchGet)
	}

	res := make(map[string]model.Summary)
	if len(paths) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, path := range paths {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(path)},
		})
	}

	out, err := s.client.BatchGetItem(&dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			s.table: {Keys: keys},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "error from DynamoDB")
	}

	for _, v := range out.Responses[s.table] {
		var item summaryItem
		if err := dynamodbattribute.UnmarshalMap(v, &item); err != nil {
			return nil, errors.Wrap(err, "could not unmarshal summary")
		}
		res[item.PK] = model.Summary{
			Count:   item.Count,
			Lowest:  model.NoteNumber(item.Lowest),
			Highest: model.NoteNumber(item.Highest),
			End:     model.Time(item.End),
		}
	}
	return res, nil
}
