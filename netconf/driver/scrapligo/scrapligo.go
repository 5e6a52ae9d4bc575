package scrapligo

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/kylelemons/godebug/diff"
	scraplinetconf "github.com/scrapli/scrapligo/driver/netconf"
	"github.com/scrapli/scrapligo/driver/options"
	"github.com/scrapli/scrapligo/util"

	"github.com/iptecharch/iosxr-driver/config"
	"github.com/iptecharch/iosxr-driver/netconf"
	"github.com/iptecharch/iosxr-driver/netconf/types"
)

const ncBaseNamespace = "urn:ietf:params:xml:ns:netconf:base:1.0"

type ScrapligoNetconfTarget struct {
	driver *scraplinetconf.Driver
	alive  bool
}

// NewScrapligoNetconfTarget inits a new ScrapligoNetconfTarget which is already connected to the target node
func NewScrapligoNetconfTarget(cfg *config.Target) (*ScrapligoNetconfTarget, error) {
	opts := []util.Option{
		options.WithAuthNoStrictKey(),
		options.WithNetconfForceSelfClosingTags(),
		options.WithTransportType("standard"),
		options.WithPort(cfg.Port),
		options.WithTimeoutOps(time.Duration(cfg.Timeout) * time.Second),
	}

	if cfg.Credentials != nil {
		opts = append(opts,
			options.WithAuthUsername(cfg.Credentials.Username),
			options.WithAuthPassword(cfg.Credentials.Password),
		)
	}

	// init the netconf driver
	d, err := scraplinetconf.NewDriver(cfg.Address, opts...)
	if err != nil {
		return nil, err
	}

	err = d.Open()
	if err != nil {
		return nil, err
	}

	return &ScrapligoNetconfTarget{
		driver: d,
		alive:  true,
	}, nil
}

func (snt *ScrapligoNetconfTarget) IsAlive() bool {
	return snt != nil && snt.driver != nil && snt.alive
}

func (snt *ScrapligoNetconfTarget) Close() error {
	snt.alive = false
	return snt.driver.Close()
}

// EditConfig transforms the generalized EditConfig into the scrapligo implementation.
// For the replace operation every top level element of the provided config is
// stamped with operation="replace"; merge is the netconf default and is sent unmarked.
func (snt *ScrapligoNetconfTarget) EditConfig(target string, config string, operation string) (*types.NetconfResponse, error) {
	// add the <config/> tag to the provided config data
	xdoc := fmt.Sprintf("<config>%s</config>", config)

	if operation == netconf.OperationReplace {
		d := etree.NewDocument()
		err := d.ReadFromString(xdoc)
		if err != nil {
			return nil, err
		}
		root := d.Root()
		root.CreateAttr("xmlns:xc", ncBaseNamespace)
		for _, ce := range root.ChildElements() {
			ce.CreateAttr("xc:operation", netconf.OperationReplace)
		}
		d.Unindent()
		xdoc, err = d.WriteToString()
		if err != nil {
			return nil, err
		}
	}

	// send the edit config rpc
	resp, err := snt.driver.EditConfig(target, xdoc)
	if err != nil {
		return nil, err
	}
	if resp.Failed != nil {
		return nil, resp.Failed
	}

	// creating a new etree Document and parsing the netconf rpc result
	x := etree.NewDocument()
	err = x.ReadFromString(resp.Result)
	if err != nil {
		return nil, err
	}

	// return the rpc result
	return types.NewNetconfResponse(x), nil
}

func (snt *ScrapligoNetconfTarget) GetConfig(source string, filter string) (*types.NetconfResponse, error) {
	opts := []util.Option{
		options.WithNetconfForceSelfClosingTags(),
	}
	if filter != "" {
		opts = append(opts, createFilterOption(filter))
	}

	// execute the GetConfig rpc
	resp, err := snt.driver.GetConfig(source, opts...)
	if err != nil {
		return nil, err
	}
	if resp.Failed != nil {
		return nil, resp.Failed
	}

	return responseDoc(resp.Result)
}

// CompareConfig renders the diff of the candidate against the running
// datastore. It is returned as opaque text, line oriented.
func (snt *ScrapligoNetconfTarget) CompareConfig() (string, error) {
	running, err := snt.getConfigString("running")
	if err != nil {
		return "", err
	}
	candidate, err := snt.getConfigString("candidate")
	if err != nil {
		return "", err
	}
	return diff.Diff(running, candidate), nil
}

func (snt *ScrapligoNetconfTarget) getConfigString(source string) (string, error) {
	rsp, err := snt.GetConfig(source, "")
	if err != nil {
		return "", err
	}
	rsp.Doc.Indent(1)
	return rsp.Doc.WriteToString()
}

func (snt *ScrapligoNetconfTarget) Commit() error {
	// execute the Commit rpc
	resp, err := snt.driver.Commit()
	if err != nil {
		return err
	}
	if resp.Failed != nil {
		return resp.Failed
	}
	return nil
}

func (snt *ScrapligoNetconfTarget) Discard() error {
	resp, err := snt.driver.Discard()
	if err != nil {
		return err
	}
	if resp.Failed != nil {
		return resp.Failed
	}
	return nil
}

func (snt *ScrapligoNetconfTarget) Get(filter string) (*types.NetconfResponse, error) {
	resp, err := snt.driver.Get(filter)
	if err != nil {
		return nil, err
	}
	if resp.Failed != nil {
		return nil, resp.Failed
	}

	return responseDoc(resp.Result)
}

func (snt *ScrapligoNetconfTarget) Lock(target string) (*types.NetconfResponse, error) {
	resp, err := snt.driver.Lock(target)
	if err != nil {
		return nil, err
	}
	if resp.Failed != nil {
		return nil, resp.Failed
	}
	x := etree.NewDocument()
	err = x.ReadFromString(resp.Result)
	if err != nil {
		return nil, err
	}

	return types.NewNetconfResponse(x), nil
}

func (snt *ScrapligoNetconfTarget) Unlock(target string) (*types.NetconfResponse, error) {
	resp, err := snt.driver.Unlock(target)
	if err != nil {
		return nil, err
	}
	if resp.Failed != nil {
		return nil, resp.Failed
	}
	x := etree.NewDocument()
	err = x.ReadFromString(resp.Result)
	if err != nil {
		return nil, err
	}

	return types.NewNetconfResponse(x), nil
}

func (snt *ScrapligoNetconfTarget) Validate(source string) (*types.NetconfResponse, error) {
	resp, err := snt.driver.Validate(source)
	if err != nil {
		return nil, err
	}
	if resp.Failed != nil {
		return nil, resp.Failed
	}
	x := etree.NewDocument()
	err = x.ReadFromString(resp.Result)
	if err != nil {
		return nil, err
	}

	return types.NewNetconfResponse(x), nil
}

// responseDoc parses a get/get-config rpc result and re-roots the document at
// /rpc-reply/data so that all requested subtrees stay in the reply.
func responseDoc(result string) (*types.NetconfResponse, error) {
	x := etree.NewDocument()
	err := x.ReadFromString(result)
	if err != nil {
		return nil, err
	}

	newRootXpath := "/rpc-reply/data"
	r := x.FindElement(newRootXpath)
	if r == nil {
		return nil, fmt.Errorf("unable to find %q in %s", newRootXpath, result)
	}

	// making the retrieved path the new root element of the xml doc
	x.SetRoot(r)

	return types.NewNetconfResponse(x), nil
}

// createFilterOption is a helper function that populates the Filter field for the internal Scrapligo RPC instantiation
func createFilterOption(filter string) util.Option {
	return func(x interface{}) error {
		oo, ok := x.(*scraplinetconf.OperationOptions)

		if !ok {
			return util.ErrIgnoredOption
		}
		oo.Filter = filter
		return nil
	}
}
