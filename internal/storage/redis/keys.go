package redisstore

import "fmt"

// Key scheme:
//   product:{id}   -> product JSON document
//   product:ids    -> set of product ids (list index)
//   customer:{id}  -> customer JSON document
//   customer:ids   -> set of customer ids
//   customer:names -> hash username -> customer id (uniqueness index)
//   order:{id}     -> order JSON document
//   order:ids      -> set of order ids
const (
	productIDsKey    = "product:ids"
	customerIDsKey   = "customer:ids"
	customerNamesKey = "customer:names"
	orderIDsKey      = "order:ids"
)

func productKey(id string) string  { return fmt.Sprintf("product:%s", id) }
func customerKey(id string) string { return fmt.Sprintf("customer:%s", id) }
func orderKey(id string) string    { return fmt.Sprintf("order:%s", id) }
