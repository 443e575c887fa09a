// Command interpret runs generated boss text through the interpreter and
// prints the resulting descriptor. Useful for tuning prompts offline.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/bossgen/assets"
	"github.com/milk9111/bossgen/boss"
	"github.com/milk9111/bossgen/ecs/system"
	"github.com/milk9111/bossgen/prefabs"
)

type report struct {
	Descriptor boss.Descriptor   `yaml:"descriptor"`
	Sources    map[string]string `yaml:"sources"`
	Behaviors  map[string]string `yaml:"behaviors"`
	Structured bool              `yaml:"structured"`
}

func main() {
	schema := flag.Bool("schema", false, "print the JSON schema sent to the generator and exit")
	sprite := flag.String("sprite", "", "write the boss sprite as PNG to this path")
	flag.Parse()

	if *schema {
		data, err := boss.Schema()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(data))
		return
	}

	var in io.Reader = os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	spec, err := prefabs.LoadBossSpec()
	if err != nil {
		log.Fatal(err)
	}

	d, err := run(in, os.Stdout, spec.Keywords, time.Now().UnixMilli())
	if err != nil {
		log.Fatal(err)
	}

	if *sprite != "" {
		if err := writeSprite(*sprite, d); err != nil {
			log.Fatal(err)
		}
	}
}

func run(in io.Reader, out io.Writer, kw prefabs.BossKeywordSpec, nowMillis int64) (boss.Descriptor, error) {
	text, err := io.ReadAll(in)
	if err != nil {
		return boss.Descriptor{}, fmt.Errorf("interpret: read input: %w", err)
	}

	res := boss.Interpret(string(text), nowMillis)
	r := report{
		Descriptor: res.Descriptor,
		Sources:    make(map[string]string, len(boss.Fields)),
		Behaviors:  make(map[string]string, len(res.Descriptor.Attacks)),
		Structured: res.Structured(),
	}
	for _, f := range boss.Fields {
		r.Sources[string(f)] = res.Sources[f].String()
	}
	for _, a := range res.Descriptor.Attacks {
		r.Behaviors[a.Name] = system.ClassifyAttack(a.Name, kw).String()
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return boss.Descriptor{}, fmt.Errorf("interpret: encode: %w", err)
	}
	return res.Descriptor, enc.Close()
}

func writeSprite(path string, d boss.Descriptor) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, assets.BossSprite(d)); err != nil {
		f.Close()
		return fmt.Errorf("interpret: encode sprite: %w", err)
	}
	return f.Close()
}
