package ninject_test

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/muir/ninject"
	"github.com/muir/ninject/store"
)

func Example() {
	s, err := store.ParseINI([]byte(`
[server]
host = example.com
port = 8080

[Greeter]
greeting = hi
DEFAULT_GREETING = from config
`))
	if err != nil {
		panic(err)
	}
	in, err := ninject.New(s, ninject.WithLogger(zap.NewNop()))
	if err != nil {
		panic(err)
	}

	dial := in.InjectConfig("server")(func(_ []interface{}, kw ninject.Kwargs) (interface{}, error) {
		return fmt.Sprintf("%s:%d", kw["host"], kw["port"]), nil
	})
	addr, _ := dial(nil, ninject.Kwargs{"port": 9000})
	fmt.Println(addr)

	greeter := in.InjectStatics("Greeter")(ninject.NewClass("Greeter").
		Static("DEFAULT_GREETING", "hello"))
	native, _ := greeter.Get("DEFAULT_GREETING")
	configured, _ := greeter.Get("greeting")
	fmt.Println(native, configured)

	// Output:
	// example.com:9000
	// hello hi
}
