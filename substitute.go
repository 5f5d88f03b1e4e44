package dynamo

import (
	"maps"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
)

// subber is a "mixin" for requests to keep track of expression placeholders:
// ExpressionAttributeNames (#name → attribute) and ExpressionAttributeValues (:value → value).
type subber struct {
	nameExpr  map[string]string
	valueExpr Item
}

func (s *subber) addName(placeholder, name string) error {
	return addEntry(&s.nameExpr, "ExpressionAttributeNames", placeholder, name)
}

func (s *subber) addValue(placeholder string, value AttributeValue) error {
	return addEntry(&s.valueExpr, "ExpressionAttributeValues", placeholder, value)
}

// merge copies the placeholders generated by an expression builder.
// Placeholders already present are reported as duplicates.
func (s *subber) merge(expr expression.Expression) error {
	for k, v := range expr.Names() {
		if err := s.addName(k, v); err != nil {
			return err
		}
	}
	for k, v := range expr.Values() {
		if err := s.addValue(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *subber) names() map[string]string {
	return maps.Clone(s.nameExpr)
}

func (s *subber) values() Item {
	return maps.Clone(s.valueExpr)
}
