package locate

// Label tables for the supported keyword set (English and German). Inside
// each table more specific labels come first to avoid false matches.

const (
	duePattern   = `\b(?:due\s+date|payment\s+due|due\s+(?:by|on)|pay(?:able)?\s+by|fällig(?:keitsdatum)?|zahlbar\s+bis)`
	taxIDPattern = `\b(?:vat\s*(?:id|no\.?|number|reg(?:istration)?(?:\s*no\.?)?)|tax\s*(?:id|no\.?|number)|ust-?\s?id(?:nr\.?)?|steuer-?\s?nr\.?|steuernummer|reg\.?\s*no\.?)`
)

var (
	reDueLabel = label(duePattern)
	taxIDLabel = label(taxIDPattern)
)

var invoiceNumberStrategies = []strategy{
	{label: label(`\binvoice\s*(?:no\.?|number|num\.?|nr\.?|#|id)`), value: identifierValue, nextLine: true},
	{label: label(`\b(?:rechnungs-?\s?(?:nummer|nr\.?)|rechnung\s*(?:nr\.?|#))`), value: identifierValue, nextLine: true},
	{label: label(`\binv\.?\s*(?:no\.?|#)`), value: identifierValue, nextLine: true},
	{label: label(`^\s*(?:invoice|rechnung)\b`), value: identifierValue},
}

var externalReferenceStrategies = []strategy{
	{label: label(`\b(?:purchase\s+order|po)\s*(?:no\.?|number|nr\.?|#)`), value: identifierValue, nextLine: true},
	{label: label(`\bpurchase\s+order\b`), value: identifierValue},
	{label: label(`\b(?:order\s*(?:no\.?|number|#)|bestellnummer|bestell-?nr\.?)`), value: identifierValue, nextLine: true},
	{label: label(`\b(?:your\s+)?(?:reference|ref\.?|referenz|ihr\s+zeichen)(?:\s*(?:no\.?|number|#))?`), value: identifierValue},
}

var dueDateStrategies = []strategy{
	{label: label(`\b(?:due\s+date|payment\s+due(?:\s+date)?|due\s+(?:by|on)|pay(?:able)?\s+by)`), value: dateValue, nextLine: true},
	{label: label(`\b(?:fällig(?:keitsdatum)?(?:\s+am)?|zahlbar\s+bis)`), value: dateValue, nextLine: true},
	{label: label(`\bdue\b`), value: dateValue},
}

// The generic fallbacks skip due-date lines, which the due-date table owns.
var invoiceDateStrategies = []strategy{
	{label: label(`\b(?:invoice\s+date|date\s+of\s+issue|issue\s+date|date\s+issued|issued(?:\s+on)?|billing\s+date)`), value: dateValue, nextLine: true},
	{label: label(`\b(?:rechnungsdatum|ausstellungsdatum|datum)\b`), value: dateValue, nextLine: true},
	{label: label(`\bdate\b`), skip: label(`\b(?:due|delivery|service|order|shipping)\b|` + duePattern), value: dateValue},
	{label: label(`^`), skip: reDueLabel, value: dateValue},
}

var netTotalStrategies = []strategy{
	{label: label(`^\s*(?:sub-?\s?total|net\s+(?:total|amount)|total\s+(?:net|excl\.?(?:uding)?\s+(?:vat|tax))|amount\s+before\s+tax|taxable\s+amount)`), value: amountValue},
	{label: label(`^\s*(?:zwischensumme|nettobetrag|summe\s+netto|gesamt\s+netto|netto(?:summe)?)`), value: amountValue},
	{label: label(`^\s*net\b`), value: amountValue},
}

var taxAmountStrategies = []strategy{
	{label: label(`^\s*(?:total\s+(?:vat|tax)|(?:vat|tax|sales\s+tax|gst)\s+amount)`), value: amountValue},
	{label: label(`^\s*(?:mwst|ust|umsatzsteuer|mehrwertsteuer)\b\.?`), skip: taxIDLabel, value: amountValue},
	{label: label(`^\s*(?:vat|tax|sales\s+tax|gst|tva)\b`), skip: label(`^\s*(?:vat|tax)\s*(?:rate|id|no\b|number|reg)|` + taxIDPattern), value: amountValue},
}

var grossTotalStrategies = []strategy{
	{label: label(`^\s*(?:grand\s+total|total\s+(?:due|amount|payable|incl\.?(?:uding)?\s+(?:vat|tax))|amount\s+(?:due|payable)|gross\s+(?:total|amount)|invoice\s+total|balance\s+due)`), value: amountValue},
	{label: label(`^\s*(?:gesamtbetrag|bruttobetrag|rechnungsbetrag|gesamtsumme|endbetrag|zu\s+zahlen|brutto(?:summe)?)`), value: amountValue},
	{label: label(`^\s*total\b`), skip: label(`^\s*total\s+(?:net|excl|vat|tax)`), value: amountValue},
}

var taxRateStrategies = []strategy{
	{label: label(`\b(?:vat|tax|mwst|ust|gst)\b\.?\s*(?:rate)?`), skip: taxIDLabel, value: percentValue},
	{label: label(`\b(?:rate|satz)\b`), value: percentValue},
}

var currencyLabelStrategies = []strategy{
	{label: label(`\b(?:currency|währung)\b`), value: currencyCodeValue},
}

// summaryStrategies mark the end of a line item table.
var summaryStrategies = [][]strategy{netTotalStrategies, taxAmountStrategies, grossTotalStrategies}

// labelStrategies are all labelled fields; such lines are never table rows.
var labelStrategies = [][]strategy{
	invoiceNumberStrategies[:3],
	externalReferenceStrategies,
	dueDateStrategies,
	invoiceDateStrategies[:3],
	netTotalStrategies,
	taxAmountStrategies,
	grossTotalStrategies,
	currencyLabelStrategies,
}
