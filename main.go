package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/hailanwhu/tsfile/conf"
	"github.com/hailanwhu/tsfile/logger"
	"github.com/hailanwhu/tsfile/tsfile/common/fileio"
	"github.com/hailanwhu/tsfile/tsfile/file/codec"
	"github.com/hailanwhu/tsfile/util"
)

const help = `
******************************************************************************************
 tsfile-meta: dump page headers and file metadata of a TsFile
******************************************************************************************
*1. -- help
*2. -- configPath   ini file with [codec] and [logs] sections
*3. -- file         TsFile to inspect
*4. -- offset       offset of the first page header
*5. -- pages        number of page headers to walk, 0 walks to the end of the file
*6. -- metaOffset   offset of the file metadata block, -1 skips it
*7. -- metaLength   length of the file metadata block
******************************************************************************************
`

type options struct {
	configPath string
	path       string
	offset     int64
	pages      int
	metaOffset int64
	metaLength int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "configPath", "", "config file path")
	flag.StringVar(&opts.path, "file", "", "TsFile path")
	flag.Int64Var(&opts.offset, "offset", 0, "offset of the first page header")
	flag.IntVar(&opts.pages, "pages", 0, "page headers to walk, 0 for all")
	flag.Int64Var(&opts.metaOffset, "metaOffset", -1, "offset of the file metadata, -1 to skip")
	flag.IntVar(&opts.metaLength, "metaLength", 0, "length of the file metadata")
	flag.Usage = func() { fmt.Fprint(os.Stderr, help) }
	flag.Parse()

	if opts.path == "" {
		flag.Usage()
		os.Exit(2)
	}

	config := conf.MustLoad(&conf.CommandLineArgs{ConfigPath: opts.configPath})
	if err := logger.InitLogger(config.LogConfig()); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger: "+err.Error())
		os.Exit(1)
	}
	logger.Infof("codec protocol=%s max_message_size=%d", config.Protocol, config.MaxMessageSize)

	if err := run(config, opts); err != nil {
		logger.Errorf("%s: %v", opts.path, err)
		os.Exit(1)
	}
}

// run inspects the file named by opts. The file is closed on every path.
func run(config *conf.Cfg, opts options) error {
	c, err := codec.NewFromConfig(config)
	if err != nil {
		return fmt.Errorf("build codec: %v", err)
	}

	reader, err := fileio.OpenLocalFileReader(opts.path)
	if err != nil {
		return err
	}
	defer reader.Close()

	if err := walkPages(c, reader, opts.offset, opts.pages); err != nil {
		return fmt.Errorf("walk pages: %w", err)
	}
	if opts.metaOffset >= 0 {
		if err := dumpMetaData(c, reader, opts.metaOffset, opts.metaLength); err != nil {
			return fmt.Errorf("read file metadata: %w", err)
		}
	}
	return nil
}

func walkPages(c *codec.Codec, reader fileio.Reader, offset int64, pages int) error {
	length, err := reader.Length()
	if err != nil {
		return err
	}
	for i := 0; (pages <= 0 || i < pages) && offset < length; i++ {
		header, err := c.ReadPageHeaderAt(reader, offset)
		if err != nil {
			return err
		}
		payload, err := fileio.ReadAt(reader, reader.Position(), int(header.CompressedSize))
		if err != nil {
			return err
		}
		fmt.Printf("page %d @%d: %s payload=%016x\n", i, offset, header, util.HashCode(payload))
		offset = reader.Position()
	}
	return nil
}

func dumpMetaData(c *codec.Codec, reader fileio.Reader, offset int64, length int) error {
	data, err := fileio.ReadAt(reader, offset, length)
	if err != nil {
		return err
	}
	md, err := c.ReadTsFileMetaData(bytes.NewReader(data))
	if err != nil {
		return err
	}
	fmt.Println(md)
	for uid, d := range md.DeltaObjectMap {
		fmt.Printf("  deltaObject %s: %s\n", uid, d)
	}
	for _, ts := range md.TimeSeriesList {
		fmt.Printf("  timeSeries %s\n", ts)
	}
	return nil
}
