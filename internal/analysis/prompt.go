package analysis

// analysisInstruction is the fixed instruction appended after the chart
// images on every analysis run. It pins the report structure and mandates
// the trailing fenced data block the visualization panel is driven by.
// Grounded search and schema-constrained output are mutually exclusive on
// the capability side, which is why the block is requested in-band.
const analysisInstruction = `Analyze the attached market chart images as one cross-asset set.

Structure your response as a markdown report with these sections:

1. **Chart Overviews** — for each chart in order: the asset or market shown, timeframe, dominant structure (trend, range, reversal), and notable technical features.
2. **Cross-Asset Correlation** — reason about how the charted assets relate: confirmations, divergences, lead/lag behavior, and what the combination implies for broad market direction.
3. **Search Verification** — use web search to verify your read against current market news and data; cite what you find and note where the live picture agrees or disagrees with the charts.
4. **Trading Psychology** — the crowd behavior and sentiment regime the charts suggest, and the discipline errors a trader is most at risk of in this regime.

End the response with exactly one fenced code block labeled json containing only a JSON object of this shape, reflecting your overall assessment:

` + "```json" + `
{
  "sentimentScore": <0-100 integer, 0 = extreme fear, 100 = extreme greed>,
  "volatilityIndex": <0-100 integer>,
  "marketPhase": "<short label, e.g. Accumulation, Markup, Distribution, Markdown>",
  "keySectors": [
    { "name": "<sector or asset>", "trend": "up" | "down" | "neutral", "value": <-100..100 signed strength> }
  ]
}
` + "```" + `

Do not place any text after the fenced block.`

// SystemPersona is sent as the capability's system instruction.
const SystemPersona = "You are a senior cross-asset market analyst. You combine technical chart reading, intermarket analysis and live market data into precise, actionable commentary. You are direct about uncertainty and never invent data."
