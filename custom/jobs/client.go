package jobs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type GraphqlClient struct {
	endpoint string
	client   *http.Client
}

func NewGraphqlClient(endpoint string, timeout time.Duration) *GraphqlClient {
	return &GraphqlClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors,omitempty"`
}

// Execute Post a query to the GraphQL boundary and decode the data field
// into out. Responds with the first GraphQL error when the errors list is
// not empty.
func (c *GraphqlClient) Execute(query string, variables map[string]interface{}, out interface{}) error {
	reqBody, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}
	r, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return err
	}
	r.Header.Add("Content-Type", "application/json")
	response, err := c.client.Do(r)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("graphql request failed with status code %d", response.StatusCode)
	}

	respObj := graphqlResponse{}
	if err := json.NewDecoder(response.Body).Decode(&respObj); err != nil {
		return err
	}
	if len(respObj.Errors) > 0 {
		return errors.New(respObj.Errors[0].Message)
	}
	if out != nil {
		if err := json.Unmarshal(respObj.Data, out); err != nil {
			return err
		}
	}
	return nil
}
