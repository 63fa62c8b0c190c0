// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package query_test

import (
	"fmt"
	"log"

	"github.com/creachadair/jvalue"
	"github.com/creachadair/jvalue/query"
)

func mustParse(s string) jvalue.Value {
	v, err := jvalue.Parse(s)
	if err != nil {
		log.Fatalf("Parse: %v", err)
	}
	return v
}

func Example_small() {
	root := mustParse(`[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]`)
	v, err := query.Eval(root, query.Path(1, "c", "d"))
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	fmt.Println(v)
	// Output:
	// true
}

func Example_medium() {
	root := mustParse(`
{
  "plaintiff": "Inigo Montoya",
  "complaint": {
     "defendant": "you",
     "action": "killed",
     "target": "Individual 1"
  },
  "requestedRelief": ["die", "pay punitive damages", "pay attorney fees"],
  "relatedPersons": {
    "Individual 1": {"id": "father", "rel": "plaintiff"}
  }
}`)

	v, err := query.Eval(root, query.Object{
		"name": query.Path("plaintiff"),
		"act": query.Array{
			query.Path("complaint", "defendant"),
			query.Path("complaint", "action"),
			query.Value("my"),
			query.MustPointer("/relatedPersons/Individual 1/id"),
		},
		"req": query.Path("requestedRelief", 0),
	})
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	obj := v.(*jvalue.Object)
	fmt.Printf("Hello, my name is: %s\n", obj.OptString("name", ""))
	fmt.Println(obj.OptArray("act"))
	fmt.Printf("Prepare to %s", obj.OptString("req", ""))
	// Output:
	// Hello, my name is: Inigo Montoya
	// ["you","killed","my","father"]
	// Prepare to die
}
