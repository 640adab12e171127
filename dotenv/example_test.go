package dotenv_test

import (
	"errors"
	"fmt"

	"github.com/ardnew/dotenvy/dotenv"
)

func ExampleParse() {
	values, err := dotenv.Parse("HOST=localhost\nURL=http://${HOST}:8080 # dev\n")
	if err != nil {
		panic(err)
	}

	fmt.Println(values["URL"])
	// Output: http://localhost:8080
}

func ExampleLocatedError_Format() {
	source := "ZAP=1\nASDF"

	_, err := dotenv.Parse(source)

	var located *dotenv.LocatedError
	if errors.As(err, &located) {
		fmt.Println(located.Format(source))
	}
	// Output:
	//    1: ZAP=1
	//    2: ASDF
	//           ^
	//
	// Error on line 2: Missing equals sign
}

func ExampleNew() {
	private := dotenv.New(map[string]string{"TOKEN": "secret"}, nil)
	env := dotenv.New(map[string]string{"TOKEN": "", "PORT": "80"}, private)

	fmt.Println(env.Get("TOKEN"), env.Get("PORT"))
	// Output: secret 80
}
